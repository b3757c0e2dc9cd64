// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/folio/lib/content"
	"github.com/bureau-foundation/folio/lib/tui"
)

const (
	modalMaxWidth = 96
	closeLabel    = "[×]"

	// Header (title, meta, tags, rule) and footer rows inside the
	// border.
	modalChromeRows = 5
)

// projectModal shows one project's rendered page over the gallery.
type projectModal struct {
	env      *env
	project  content.Project
	page     string
	viewport viewport.Model

	box         rect
	closeButton rect
	inner       int
}

func newProjectModal(e *env, project content.Project) *projectModal {
	return &projectModal{
		env:     e,
		project: project,
		page:    e.catalog.PageOrFallback(project.Content),
	}
}

func (m *projectModal) resize(width, height int) {
	boxWidth := max(min(width-4, modalMaxWidth), 24)
	boxHeight := max(height-2, modalChromeRows+3)
	m.box = rect{
		x:      max((width-boxWidth)/2, 0),
		y:      max((height-boxHeight)/2, 0),
		width:  boxWidth,
		height: boxHeight,
	}
	// Border and horizontal padding.
	m.inner = boxWidth - 4
	m.closeButton = rect{
		x:      m.box.x + 2 + m.inner - lipgloss.Width(closeLabel),
		y:      m.box.y + 1,
		width:  lipgloss.Width(closeLabel),
		height: 1,
	}

	offset := m.viewport.YOffset
	bodyWidth := m.inner - 1
	m.viewport = viewport.New(bodyWidth, max(boxHeight-2-modalChromeRows, 1))
	m.viewport.SetContent(m.env.renderer.Render(m.page, bodyWidth))
	m.viewport.SetYOffset(offset)
}

func (m *projectModal) scroll(delta int) {
	m.viewport.SetYOffset(m.viewport.YOffset + delta)
}

func (m *projectModal) handleKey(message tea.KeyMsg) {
	keys := m.env.keys
	switch {
	case key.Matches(message, keys.Up):
		m.scroll(-1)
	case key.Matches(message, keys.Down):
		m.scroll(1)
	case key.Matches(message, keys.PageUp):
		m.scroll(-max(m.viewport.Height-1, 1))
	case key.Matches(message, keys.PageDown):
		m.scroll(max(m.viewport.Height-1, 1))
	case key.Matches(message, keys.Top):
		m.viewport.GotoTop()
	case key.Matches(message, keys.Bottom):
		m.viewport.GotoBottom()
	}
}

// handleMouse scrolls on the wheel and reports whether a click should
// close the modal: on the close button or anywhere outside the box.
func (m *projectModal) handleMouse(message tea.MouseMsg, x, y int) bool {
	if delta, ok := isWheel(message); ok {
		m.scroll(delta)
		return false
	}
	if !isClick(message) {
		return false
	}
	return m.closeButton.contains(x, y) || !m.box.contains(x, y)
}

func (m *projectModal) overlay(view string) string {
	return tui.SpliceOverlay(view, strings.Split(m.render(), "\n"), m.box.x, m.box.y)
}

func (m *projectModal) render() string {
	theme := m.env.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).
		Render(ansi.Truncate(m.project.Name, m.inner-lipgloss.Width(closeLabel)-1, "…"))
	closeButton := lipgloss.NewStyle().Foreground(theme.HelpText).Render(closeLabel)
	gap := max(m.inner-lipgloss.Width(title)-lipgloss.Width(closeButton), 1)
	header := title + strings.Repeat(" ", gap) + closeButton

	meta := faint.Render(ansi.Truncate(fmt.Sprintf("%d · %s", m.project.Year, m.project.Properties), m.inner, "…"))

	chip := lipgloss.NewStyle().Foreground(theme.TagForeground).Background(theme.TagBackground)
	var chips []string
	for _, tag := range m.project.Tags {
		chips = append(chips, chip.Render(" "+tag+" "))
	}
	technologies := faint.Italic(true).Render(strings.Join(m.project.Technologies, ", "))
	tags := ansi.Truncate(strings.Join(chips, " ")+"  "+technologies, m.inner, "…")

	rule := lipgloss.NewStyle().Foreground(theme.BorderColor).Render(strings.Repeat("─", m.inner))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		tui.PadLines(m.viewport.View(), m.viewport.Width, m.viewport.Height),
		tui.RenderScrollbar(theme, m.viewport.Height, m.viewport.TotalLineCount(), m.viewport.Height, m.viewport.YOffset, true),
	)

	position := fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)
	hint := "Esc close"
	footer := faint.Render(hint + strings.Repeat(" ", max(m.inner-len(hint)-len(position), 1)) + position)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 1).
		Width(m.box.width - 2).
		Render(strings.Join([]string{header, meta, tags, rule, body, footer}, "\n"))
}
