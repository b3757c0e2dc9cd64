// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/folio/lib/content"
	"github.com/bureau-foundation/folio/lib/reveal"
	"github.com/bureau-foundation/folio/lib/tui"
)

// Gallery entrance: cards fade in one after another.
const (
	cardStagger  = 100 * time.Millisecond
	cardDuration = 300 * time.Millisecond
)

// Card geometry. cardHeight includes the border.
const (
	cardWidth   = 34
	cardHeight  = 9
	cardGap     = 1
	cardSlide   = 3
	filterWidth = 40
)

type projectsPage struct {
	env      *env
	projects []content.Project
	footer   string

	width, height int

	entrance *reveal.Sequencer

	filter    textinput.Model
	filtering bool
	slab      *util.Slab

	// visible is the gallery after filtering, in display order.
	visible   []galleryItem
	selected  int
	scrollRow int
	columns   int

	modal *projectModal
}

// galleryItem is one card: the project index and the matched rune
// positions in its name.
type galleryItem struct {
	index     int
	score     int
	positions []int
}

func newProjectsPage(e *env) *projectsPage {
	projects := e.catalog.Projects()
	names := make([]string, len(projects))
	for index, project := range projects {
		names[index] = project.Name
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter by name, tag or technology"
	filter.Width = filterWidth

	gallery := &projectsPage{
		env:      e,
		projects: projects,
		footer:   e.catalog.Site().Projects.Footer,
		entrance: reveal.MustNew(e.scheduler, reveal.Stagger(reveal.Block, names, 0, cardStagger), reveal.Options{Duration: cardDuration}),
		filter:   filter,
		slab:     util.MakeSlab(100*1024, 2048),
		columns:  1,
	}
	gallery.entrance.SetTriggered(true)
	gallery.applyFilter()
	return gallery
}

func (p *projectsPage) resize(width, height int) {
	p.width, p.height = width, height
	p.columns = max((width-2+cardGap)/(cardWidth+cardGap), 1)
	p.ensureVisible()
	if p.modal != nil {
		p.modal.resize(width, height)
	}
}

// applyFilter recomputes the visible cards from the filter text. The
// pattern is matched against name, tags and technologies together;
// highlighted positions are kept only where they fall in the name.
func (p *projectsPage) applyFilter() {
	pattern := []rune(strings.TrimSpace(p.filter.Value()))
	p.visible = p.visible[:0]
	for index, project := range p.projects {
		name := []rune(project.Name)
		haystack := project.Name + " " + strings.Join(project.Tags, " ") + " " + strings.Join(project.Technologies, " ")
		match := tui.FuzzyMatch(haystack, pattern, p.slab)
		if match.Score <= 0 {
			continue
		}
		var positions []int
		for _, position := range match.Positions {
			if position < len(name) {
				positions = append(positions, position)
			}
		}
		p.visible = append(p.visible, galleryItem{index: index, score: match.Score, positions: positions})
	}
	if len(pattern) > 0 {
		slices.SortStableFunc(p.visible, func(a, b galleryItem) int { return b.score - a.score })
	}
	p.selected = min(p.selected, max(len(p.visible)-1, 0))
	p.ensureVisible()
}

func (p *projectsPage) filterBarVisible() bool {
	return p.filtering || p.filter.Value() != ""
}

// gridTop is the first content row of the card grid.
func (p *projectsPage) gridTop() int {
	if p.filterBarVisible() {
		return 2
	}
	return 1
}

func (p *projectsPage) visibleRows() int {
	return max((p.height-p.gridTop()-2+cardGap)/(cardHeight+cardGap), 1)
}

func (p *projectsPage) rowCount() int {
	return (len(p.visible) + p.columns - 1) / p.columns
}

func (p *projectsPage) ensureVisible() {
	row := p.selected / p.columns
	rows := p.visibleRows()
	if row < p.scrollRow {
		p.scrollRow = row
	}
	if row >= p.scrollRow+rows {
		p.scrollRow = row - rows + 1
	}
	p.scrollRow = min(max(p.scrollRow, 0), max(p.rowCount()-rows, 0))
}

func (p *projectsPage) move(delta int) {
	if len(p.visible) == 0 {
		return
	}
	p.selected = min(max(p.selected+delta, 0), len(p.visible)-1)
	p.ensureVisible()
}

func (p *projectsPage) open() {
	if p.selected >= len(p.visible) {
		return
	}
	project := p.projects[p.visible[p.selected].index]
	p.modal = newProjectModal(p.env, project)
	p.modal.resize(p.width, p.height)
}

func (p *projectsPage) handleKey(message tea.KeyMsg) tea.Cmd {
	keys := p.env.keys
	if p.modal != nil {
		if key.Matches(message, keys.Back) || key.Matches(message, keys.Quit) && message.String() == "q" {
			p.modal = nil
			return nil
		}
		p.modal.handleKey(message)
		return nil
	}

	if p.filtering {
		switch {
		case key.Matches(message, keys.Back):
			p.filtering = false
			p.filter.Blur()
			p.filter.SetValue("")
			p.applyFilter()
			return nil
		case key.Matches(message, keys.Select):
			p.filtering = false
			p.filter.Blur()
			return nil
		}
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(message)
		p.applyFilter()
		return cmd
	}

	switch {
	case key.Matches(message, keys.Filter):
		p.filtering = true
		p.ensureVisible()
		return p.filter.Focus()
	case key.Matches(message, keys.Back):
		if p.filter.Value() != "" {
			p.filter.SetValue("")
			p.applyFilter()
		}
	case key.Matches(message, keys.Left):
		p.move(-1)
	case key.Matches(message, keys.Right):
		p.move(1)
	case key.Matches(message, keys.Up):
		p.move(-p.columns)
	case key.Matches(message, keys.Down):
		p.move(p.columns)
	case key.Matches(message, keys.Top):
		p.move(-len(p.visible))
	case key.Matches(message, keys.Bottom):
		p.move(len(p.visible))
	case key.Matches(message, keys.PageUp):
		p.move(-p.columns * p.visibleRows())
	case key.Matches(message, keys.PageDown):
		p.move(p.columns * p.visibleRows())
	case key.Matches(message, keys.Select):
		p.open()
	}
	return nil
}

func (p *projectsPage) handleMouse(message tea.MouseMsg, x, y int) tea.Cmd {
	if p.modal != nil {
		if p.modal.handleMouse(message, x, y) {
			p.modal = nil
		}
		return nil
	}
	if delta, ok := isWheel(message); ok {
		if delta < 0 {
			p.scrollRow = max(p.scrollRow-1, 0)
		} else {
			p.scrollRow = min(p.scrollRow+1, max(p.rowCount()-p.visibleRows(), 0))
		}
		return nil
	}
	if !isClick(message) {
		return nil
	}
	if position, ok := p.cardAt(x, y); ok {
		p.selected = position
		p.open()
	}
	return nil
}

// cardAt maps a content-area cell to the visible card under it.
func (p *projectsPage) cardAt(x, y int) (int, bool) {
	y -= p.gridTop()
	x -= p.gridLeft()
	if x < 0 || y < 0 {
		return 0, false
	}
	column := x / (cardWidth + cardGap)
	row := y / (cardHeight + cardGap)
	if column >= p.columns || x%(cardWidth+cardGap) >= cardWidth || y%(cardHeight+cardGap) >= cardHeight {
		return 0, false
	}
	position := (p.scrollRow+row)*p.columns + column
	if row >= p.visibleRows() || position >= len(p.visible) {
		return 0, false
	}
	return position, true
}

func (p *projectsPage) gridLeft() int {
	used := p.columns*(cardWidth+cardGap) - cardGap
	return max((p.width-used)/2, 0)
}

func (p *projectsPage) handle(message tea.Msg) tea.Cmd {
	if !p.filtering {
		return nil
	}
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(message)
	return cmd
}

func (p *projectsPage) animating() bool { return p.entrance.Animating() }

func (p *projectsPage) capturing() bool { return p.filtering || p.modal != nil }

func (p *projectsPage) help() string {
	switch {
	case p.modal != nil:
		return "↑↓ scroll  Esc close"
	case p.filtering:
		return "type to filter  Enter done  Esc clear"
	}
	return "←↑↓→ select  Enter open  / filter"
}

func (p *projectsPage) stop() {
	p.entrance.Stop()
	p.filter.Blur()
	p.modal = nil
}

func (p *projectsPage) render() string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}
	theme := p.env.theme
	var lines []string

	if p.filterBarVisible() {
		lines = append(lines, " "+p.filter.View())
	}
	lines = append(lines, "")

	if len(p.visible) == 0 {
		empty := lipgloss.NewStyle().Foreground(theme.FaintText).Render("No projects match the filter.")
		lines = append(lines, lipgloss.PlaceHorizontal(p.width, lipgloss.Center, empty))
	}

	left := strings.Repeat(" ", p.gridLeft())
	rows := p.visibleRows()
	for row := p.scrollRow; row < min(p.scrollRow+rows, p.rowCount()); row++ {
		var cards []string
		for column := 0; column < p.columns; column++ {
			position := row*p.columns + column
			if position >= len(p.visible) {
				break
			}
			if column > 0 {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, p.renderCard(position))
		}
		lines = append(lines, strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, cards...), "\n")...)
		for index := len(lines) - cardHeight; index < len(lines); index++ {
			lines[index] = left + lines[index]
		}
		lines = append(lines, "")
	}

	if p.scrollRow+rows >= p.rowCount() && p.footer != "" {
		footer := lipgloss.NewStyle().Italic(true).Foreground(theme.FaintText).Render(p.footer)
		lines = append(lines, lipgloss.PlaceHorizontal(p.width, lipgloss.Center, footer))
	}

	view := tui.PadLines(strings.Join(lines, "\n"), p.width, p.height)
	if rows < p.rowCount() {
		scrollbar := tui.RenderScrollbar(theme, p.height, p.rowCount(), rows, p.scrollRow, true)
		view = tui.SpliceOverlay(view, strings.Split(scrollbar, "\n"), p.width-1, 0)
	}
	if p.modal != nil {
		view = p.modal.overlay(tui.Dim(view, theme))
	}
	return view
}

// renderCard draws the card at a visible position. Hidden cards keep
// their footprint so the grid does not move as cards arrive.
func (p *projectsPage) renderCard(position int) string {
	theme := p.env.theme
	item := p.visible[position]
	project := p.projects[item.index]
	state := p.entrance.Element(item.index)
	if state.Phase == reveal.Hidden {
		return tui.PadLines("", cardWidth, cardHeight)
	}
	inner := cardWidth - 4

	selected := position == p.selected
	borderColor := theme.BorderColor
	if selected {
		borderColor = theme.Accent
	}

	cover := p.env.catalog.ResolveImage(project.Image)
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	name := tui.HighlightMatches(ansi.Truncate(project.Name, inner, "…"), item.positions,
		nameStyle, nameStyle.Foreground(theme.MatchForeground).Underline(true))

	properties := layoutWords(fmt.Sprintf("%d · %s", project.Year, project.Properties), inner)
	for len(properties) < 2 {
		properties = append(properties, "")
	}
	if len(properties) > 2 {
		properties = properties[:2]
		properties[1] = ansi.Truncate(properties[1]+" …", inner, "…")
	}
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	body := []string{
		lipgloss.NewStyle().Foreground(theme.AccentSoft).Render(ansi.Truncate("▣ "+filepath.Base(cover), inner, "…")),
		name,
		faint.Render(properties[0]),
		faint.Render(properties[1]),
		ansi.Truncate(p.renderTags(project.Tags), inner, "…"),
		faint.Italic(true).Render(ansi.Truncate(strings.Join(project.Technologies, ", "), inner, "…")),
		"",
	}
	if state.Phase == reveal.Entering {
		for index, line := range body {
			body[index] = entranceStyle(state, lipgloss.NewStyle()).Render(ansi.Strip(line))
		}
		borderColor = tui.FadeColor(tui.EaseOut(state.Progress))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(cardWidth - 2).
		Render(strings.Join(body, "\n"))
	if state.Phase == reveal.Entering {
		card = tui.Slide(card, tui.Offset(state.Progress, cardSlide))
	}
	return tui.PadLines(card, cardWidth, cardHeight)
}

func (p *projectsPage) renderTags(tags []string) string {
	chip := lipgloss.NewStyle().
		Foreground(p.env.theme.TagForeground).
		Background(p.env.theme.TagBackground)
	parts := make([]string, len(tags))
	for index, tag := range tags {
		parts[index] = chip.Render(" " + tag + " ")
	}
	return strings.Join(parts, " ")
}
