// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/folio/lib/content"
	"github.com/bureau-foundation/folio/lib/reveal"
	"github.com/bureau-foundation/folio/lib/schedule"
	"github.com/bureau-foundation/folio/lib/tui"
)

// About timeline, measured from mount.
const (
	tagDelay     = 200 * time.Millisecond
	tagStagger   = 100 * time.Millisecond
	tagDuration  = 300 * time.Millisecond
	bioDelay     = 600 * time.Millisecond
	flipDuration = 600 * time.Millisecond
)

// Profile card geometry. profileCardWidth includes the border.
const (
	profileCardWidth = 38
	aboutColumnGap   = 4
	aboutSideBySide  = profileCardWidth + aboutColumnGap + 40
)

type aboutPage struct {
	env   *env
	copy  content.AboutCopy
	owner string

	width, height int
	offset        int
	total         int

	tags *reveal.Sequencer
	bio  *reveal.Sequencer

	// flipped is the side being turned to. While the flip timer runs
	// the card is mid-turn.
	flipped   bool
	flipStart time.Time
	flipTimer schedule.Handle

	card     rect
	bioLeft  int
	bioTop   int
	bioWidth int
	bioLines [][]string
}

func newAboutPage(e *env) *aboutPage {
	site := e.catalog.Site()
	about := &aboutPage{
		env:   e,
		copy:  site.About,
		owner: site.Owner,
		tags:  reveal.MustNew(e.scheduler, reveal.Stagger(reveal.Block, site.About.Tags, tagDelay, tagStagger), reveal.Options{Duration: tagDuration}),
	}
	paragraphs := make([]string, len(site.About.Bio))
	for index, paragraph := range site.About.Bio {
		paragraphs[index] = normalize(paragraph)
	}
	about.bio = reveal.MustNew(e.scheduler, reveal.Stagger(reveal.Paragraph, paragraphs, bioDelay, 0), reveal.Options{})
	about.tags.SetTriggered(true)
	about.bio.SetTriggered(true)
	return about
}

func (a *aboutPage) resize(width, height int) {
	a.width, a.height = width, height
	cardHeight := a.cardHeight()

	if width >= aboutSideBySide {
		a.card = rect{x: 2, y: 1, width: profileCardWidth, height: cardHeight}
		a.bioLeft = a.card.x + profileCardWidth + aboutColumnGap
		a.bioTop = 1
		a.bioWidth = width - a.bioLeft - 2
	} else {
		a.card = rect{x: max((width-profileCardWidth)/2, 0), y: 1, width: profileCardWidth, height: cardHeight}
		a.bioLeft = 2
		a.bioTop = a.card.y + cardHeight + 2
		a.bioWidth = max(width-4, 10)
	}

	a.bioLines = make([][]string, a.bio.Len())
	bioHeight := 0
	for index := range a.bioLines {
		a.bioLines[index] = layoutWords(a.bio.Element(index).Entry.Content, a.bioWidth)
		bioHeight += len(a.bioLines[index]) + 1
	}
	a.total = max(a.card.y+cardHeight, a.bioTop+bioHeight) + 1
	a.scrollTo(a.offset)
}

func (a *aboutPage) scrollTo(offset int) {
	a.offset = min(max(offset, 0), max(a.total-a.height, 0))
}

func (a *aboutPage) flip() {
	if a.flipping() {
		return
	}
	a.flipped = !a.flipped
	a.flipStart = a.env.scheduler.Now()
	a.flipTimer = a.env.scheduler.Schedule(flipDuration, func() { a.flipTimer = 0 })
}

func (a *aboutPage) flipping() bool { return a.flipTimer != 0 }

// flipProgress runs from 0 to 1 across a flip and is 1 at rest.
func (a *aboutPage) flipProgress() float64 {
	if !a.flipping() {
		return 1
	}
	elapsed := a.env.scheduler.Now().Sub(a.flipStart)
	return min(max(float64(elapsed)/float64(flipDuration), 0), 1)
}

func (a *aboutPage) handleKey(message tea.KeyMsg) tea.Cmd {
	keys := a.env.keys
	switch {
	case key.Matches(message, keys.Select):
		a.flip()
	case key.Matches(message, keys.Up):
		a.scrollTo(a.offset - 1)
	case key.Matches(message, keys.Down):
		a.scrollTo(a.offset + 1)
	case key.Matches(message, keys.PageUp):
		a.scrollTo(a.offset - max(a.height-2, 1))
	case key.Matches(message, keys.PageDown):
		a.scrollTo(a.offset + max(a.height-2, 1))
	case key.Matches(message, keys.Top):
		a.scrollTo(0)
	case key.Matches(message, keys.Bottom):
		a.scrollTo(a.total)
	}
	return nil
}

func (a *aboutPage) handleMouse(message tea.MouseMsg, x, y int) tea.Cmd {
	if delta, ok := isWheel(message); ok {
		a.scrollTo(a.offset + delta)
		return nil
	}
	if isClick(message) && a.card.contains(x, y+a.offset) {
		a.flip()
	}
	return nil
}

func (a *aboutPage) handle(tea.Msg) tea.Cmd { return nil }

func (a *aboutPage) animating() bool {
	return a.flipping() || a.tags.Animating() || a.bio.Animating()
}

func (a *aboutPage) capturing() bool { return false }

func (a *aboutPage) help() string {
	if a.flipped {
		return "Enter flip back  ↑↓ scroll"
	}
	return "Enter contact info  ↑↓ scroll"
}

func (a *aboutPage) stop() {
	schedule.CancelAll(a.env.scheduler, &a.flipTimer)
	a.tags.Stop()
	a.bio.Stop()
}

func (a *aboutPage) render() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	lines := newCanvas(a.total)
	lines.draw(a.card.y, tui.Slide(a.renderCard(), a.card.x))
	lines.splice(a.bioTop, a.bioLeft, a.renderBio())
	return lines.window(a.offset, a.width, a.height)
}

func (a *aboutPage) cardHeight() int {
	// Border plus the taller of the two faces.
	return max(len(a.front()), len(a.back())) + 2
}

// renderCard draws the visible face. Mid-flip the card narrows to
// nothing around its center and widens again showing the other face.
func (a *aboutPage) renderCard() string {
	progress := a.flipProgress()
	showBack := a.flipped
	scale := 1.0
	if a.flipping() {
		scale = math.Abs(math.Cos(math.Pi * progress))
		if progress < 0.5 {
			showBack = !showBack
		}
	}

	face := a.front()
	if showBack {
		face = a.back()
	}
	contentWidth := profileCardWidth - 4
	for len(face) < a.cardHeight()-2 {
		face = append(face, "")
	}

	width := max(int(math.Round(float64(contentWidth)*scale)), 1)
	for index, line := range face {
		face[index] = lipgloss.PlaceHorizontal(contentWidth, lipgloss.Center, line)
		if width < contentWidth {
			face[index] = ansi.Truncate(ansi.TruncateLeft(face[index], (contentWidth-width)/2, ""), width, "")
		}
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.env.theme.Accent).
		Padding(0, 1).
		Width(width + 2).
		Render(strings.Join(face, "\n"))
	return tui.Slide(card, (profileCardWidth-lipgloss.Width(card))/2)
}

func (a *aboutPage) front() []string {
	theme := a.env.theme
	lines := []string{
		"",
		lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(a.owner),
		lipgloss.NewStyle().Foreground(theme.FaintText).Render("⌖ " + a.copy.Location),
		"",
	}
	chip := lipgloss.NewStyle().Foreground(theme.TagForeground).Background(theme.TagBackground)
	for index := range a.copy.Tags {
		state := a.tags.Element(index)
		switch state.Phase {
		case reveal.Hidden:
			lines = append(lines, "")
		case reveal.Entering:
			lines = append(lines, entranceStyle(state, lipgloss.NewStyle()).Render(" "+state.Entry.Content+" "))
		default:
			lines = append(lines, chip.Render(" "+state.Entry.Content+" "))
		}
	}
	if a.copy.FlipHint != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.HelpText).Render(a.copy.FlipHint))
	}
	return lines
}

func (a *aboutPage) back() []string {
	theme := a.env.theme
	lines := []string{
		"",
		lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(a.copy.ConnectTitle),
		"",
	}
	label := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	link := lipgloss.NewStyle().Foreground(theme.LinkForeground).Underline(true)
	for _, entry := range a.copy.Links {
		handle := link.Render(entry.Handle)
		if entry.URL != "" {
			handle = ansi.SetHyperlink(entry.URL) + handle + ansi.ResetHyperlink()
		}
		lines = append(lines, label.Render(entry.Label), handle, "")
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.HelpText).Render("← flip back"))
	return lines
}

func (a *aboutPage) renderBio() string {
	theme := a.env.theme
	normal := lipgloss.NewStyle().Foreground(theme.NormalText)
	bold := normal.Bold(true).Foreground(theme.HeaderForeground)

	var lines []string
	for index, paragraph := range a.bioLines {
		state := a.bio.Element(index)
		for _, line := range paragraph {
			switch state.Phase {
			case reveal.Hidden:
				lines = append(lines, "")
			case reveal.Entering:
				lines = append(lines, entranceStyle(state, normal).Render(line))
			default:
				lines = append(lines, bionic(line, normal, bold))
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
