// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/folio/lib/content"
	"github.com/bureau-foundation/folio/lib/inview"
	"github.com/bureau-foundation/folio/lib/reveal"
	"github.com/bureau-foundation/folio/lib/tabs"
	"github.com/bureau-foundation/folio/lib/tui"
)

// Hero timeline, measured from mount.
const (
	greetingDelay = 500 * time.Millisecond
	greetingSpeed = 80 * time.Millisecond
	nameDelay     = 1000 * time.Millisecond
	nameSpeed     = 500 * time.Millisecond
	welcomeDelay  = 6500 * time.Millisecond
	welcomeSpeed  = 70 * time.Millisecond
	hintDelay     = 8500 * time.Millisecond
)

// "I work on" heading, measured from its trigger.
const (
	workOnDelay = 300 * time.Millisecond
	workOnSpeed = 60 * time.Millisecond
)

// CTA entrance, measured from its trigger.
const (
	ctaButtonDelay = 200 * time.Millisecond
	ctaDuration    = 600 * time.Millisecond
)

// Hero entry indices.
const (
	heroGreeting = iota
	heroName
	heroWelcome
	heroHint
)

// Layout.
const (
	sectionGap        = 3
	sideBySideWidth   = 72
	imageBoxHeight    = 5
	slideDistance     = 6
	ctaHeight         = 5
	homeBottomPadding = 2
)

type homePage struct {
	env   *env
	copy  content.HomeCopy
	owner string

	width, height int
	offset        int
	total         int

	observer *inview.ScrollObserver

	hero *reveal.Sequencer

	workOn        *reveal.Sequencer
	workOnTrigger *inview.Trigger
	workOnBounds  inview.Span

	sections []*homeSection

	cta        *reveal.Sequencer
	ctaTrigger *inview.Trigger
	ctaBounds  inview.Span
	ctaButton  rect
}

type homeSection struct {
	section   content.Section
	sequencer *reveal.Sequencer
	trigger   *inview.Trigger
	bounds    inview.Span

	// Laid out at resize.
	titleLines []string
	itemLines  [][]string
	textWidth  int
	imageWidth int
	stacked    bool
	imageLeft  bool
}

func newHomePage(e *env) *homePage {
	site := e.catalog.Site()
	home := &homePage{
		env:      e,
		copy:     site.Home,
		owner:    normalize(site.Owner),
		observer: inview.NewScrollObserver(inview.Span{}),
	}

	home.hero = reveal.MustNew(e.scheduler, []reveal.Entry{
		{Kind: reveal.Paragraph, Delay: greetingDelay, Content: normalize(home.copy.Greeting), Speed: greetingSpeed},
		{Kind: reveal.Title, Delay: nameDelay, Content: home.owner, Speed: nameSpeed},
		{Kind: reveal.Paragraph, Delay: welcomeDelay, Content: normalize(home.copy.Welcome), Speed: welcomeSpeed},
		{Kind: reveal.Block, Delay: hintDelay, Content: home.copy.ScrollHint},
	}, reveal.Options{})
	home.hero.SetTriggered(true)

	home.workOn = reveal.MustNew(e.scheduler, []reveal.Entry{
		{Kind: reveal.Title, Delay: workOnDelay, Content: normalize(home.copy.WorkOn), Speed: workOnSpeed},
	}, reveal.Options{})
	home.workOnTrigger = inview.NewTrigger(home.observer,
		inview.ElementFunc(func() inview.Span { return home.workOnBounds }),
		inview.OneShot(inview.DefaultThreshold))
	home.workOn.Bind(home.workOnTrigger)

	for index, section := range home.copy.Sections {
		items := make([]string, len(section.Items))
		for itemIndex, item := range section.Items {
			items[itemIndex] = normalize(item)
		}
		entry := &homeSection{
			section:   section,
			sequencer: reveal.MustNew(e.scheduler, reveal.Section(normalize(section.Title), items, section.Image), reveal.Options{}),
			imageLeft: index%2 == 1,
		}
		entry.trigger = inview.NewTrigger(home.observer,
			inview.ElementFunc(func() inview.Span { return entry.bounds }),
			inview.Repeatable(inview.DefaultThreshold))
		entry.sequencer.Bind(entry.trigger)
		home.sections = append(home.sections, entry)
	}

	home.cta = reveal.MustNew(e.scheduler, []reveal.Entry{
		{Kind: reveal.Title, Content: home.copy.CTA.Title},
		{Kind: reveal.Block, Delay: ctaButtonDelay, Content: home.copy.CTA.Button},
	}, reveal.Options{Duration: ctaDuration})
	home.ctaTrigger = inview.NewTrigger(home.observer,
		inview.ElementFunc(func() inview.Span { return home.ctaBounds }),
		inview.OneShot(inview.DefaultThreshold))
	home.cta.Bind(home.ctaTrigger)

	return home
}

func (h *homePage) resize(width, height int) {
	h.width, h.height = width, height
	h.layout()
	// Scrolling re-evaluates every trigger against the new bounds.
	h.scrollTo(h.offset)
}

// layout assigns every block its rows. Typed text reserves its full
// wrapped height up front so nothing shifts while it types.
func (h *homePage) layout() {
	row := max(h.height, 8)

	row++
	h.workOnBounds = inview.Span{Top: row, Height: 2}
	row += 2

	for _, section := range h.sections {
		row += sectionGap
		section.stacked = h.width < sideBySideWidth
		if section.stacked {
			section.textWidth = max(h.width-4, 10)
			section.imageWidth = section.textWidth
		} else {
			section.textWidth = h.width*55/100 - 2
			section.imageWidth = h.width - section.textWidth - 6
		}

		section.titleLines = layoutWords(section.section.Title, section.textWidth)
		section.itemLines = make([][]string, len(section.section.Items))
		textHeight := len(section.titleLines) + 1
		for index, item := range section.section.Items {
			section.itemLines[index] = layoutWords(item, section.textWidth-2)
			textHeight += len(section.itemLines[index])
		}

		height := textHeight
		if section.section.Image != "" {
			if section.stacked {
				height = textHeight + 1 + imageBoxHeight
			} else {
				height = max(textHeight, imageBoxHeight)
			}
		}
		section.bounds = inview.Span{Top: row, Height: height}
		row += height
	}

	row += sectionGap
	h.ctaBounds = inview.Span{Top: row, Height: ctaHeight}
	// Border, padding and the trailing arrow.
	buttonWidth := lipgloss.Width(h.copy.CTA.Button+" →") + 6
	h.ctaButton = rect{
		x:      max((h.width-buttonWidth)/2, 0),
		y:      row + 2,
		width:  buttonWidth,
		height: 3,
	}
	row += ctaHeight

	h.total = row + homeBottomPadding
}

func (h *homePage) maxOffset() int {
	return max(h.total-h.height, 0)
}

func (h *homePage) scrollTo(offset int) {
	h.offset = min(max(offset, 0), h.maxOffset())
	h.observer.Scroll(inview.Span{Top: h.offset, Height: h.height})
}

func (h *homePage) handleKey(message tea.KeyMsg) tea.Cmd {
	keys := h.env.keys
	switch {
	case key.Matches(message, keys.Up):
		h.scrollTo(h.offset - 1)
	case key.Matches(message, keys.Down):
		h.scrollTo(h.offset + 1)
	case key.Matches(message, keys.PageUp):
		h.scrollTo(h.offset - max(h.height-2, 1))
	case key.Matches(message, keys.PageDown):
		h.scrollTo(h.offset + max(h.height-2, 1))
	case key.Matches(message, keys.Top):
		h.scrollTo(0)
	case key.Matches(message, keys.Bottom):
		h.scrollTo(h.maxOffset())
	case key.Matches(message, keys.Select):
		if h.ctaReady() {
			h.env.dispatch(tabs.Projects)
		}
	}
	return nil
}

func (h *homePage) handleMouse(message tea.MouseMsg, x, y int) tea.Cmd {
	if delta, ok := isWheel(message); ok {
		h.scrollTo(h.offset + delta)
		return nil
	}
	if isClick(message) && h.ctaReady() && h.ctaButton.contains(x, y+h.offset) {
		h.env.dispatch(tabs.Projects)
	}
	return nil
}

func (h *homePage) handle(tea.Msg) tea.Cmd { return nil }

// ctaReady reports whether the button has appeared.
func (h *homePage) ctaReady() bool {
	return h.cta.Element(1).Phase != reveal.Hidden
}

func (h *homePage) animating() bool {
	if h.hero.Animating() || h.workOn.Animating() || h.cta.Animating() {
		return true
	}
	for _, section := range h.sections {
		if section.sequencer.Animating() {
			return true
		}
	}
	return false
}

func (h *homePage) capturing() bool { return false }

func (h *homePage) help() string {
	if h.ctaReady() {
		return "↑↓ scroll  Enter view projects"
	}
	return "↑↓ scroll"
}

func (h *homePage) stop() {
	h.hero.Stop()
	h.workOn.Stop()
	h.workOnTrigger.Stop()
	for _, section := range h.sections {
		section.sequencer.Stop()
		section.trigger.Stop()
	}
	h.cta.Stop()
	h.ctaTrigger.Stop()
}

func (h *homePage) render() string {
	if h.width <= 0 || h.height <= 0 {
		return ""
	}
	lines := newCanvas(h.total)
	lines.draw(0, h.renderHero())
	lines.draw(h.workOnBounds.Top, h.renderWorkOn())
	for _, section := range h.sections {
		lines.draw(section.bounds.Top, h.renderSection(section))
	}
	lines.draw(h.ctaBounds.Top, h.renderCTA())
	return lines.window(h.offset, h.width, h.height)
}

func (h *homePage) renderHero() string {
	theme := h.env.theme
	heroHeight := max(h.height, 8)
	cursor := lipgloss.NewStyle().Foreground(theme.Accent)

	greeting := h.hero.Element(heroGreeting)
	name := h.hero.Element(heroName)
	welcome := h.hero.Element(heroWelcome)
	hint := h.hero.Element(heroHint)

	var block []string
	block = append(block, typedEntry(greeting, h.width, lipgloss.NewStyle().Foreground(theme.NormalText), cursor)...)
	block = append(block, "")

	// The name is drawn letter-spaced and uppercase, one letter per
	// tick.
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	nameLine := ""
	if name.Phase != reveal.Hidden && name.Typewriter != nil {
		nameLine = nameStyle.Render(letterSpaced(name.Typewriter.Displayed()))
		if name.Typewriter.CursorVisible() {
			nameLine += cursor.Render(" _")
		}
	}
	block = append(block, nameLine, "")
	block = append(block, typedEntry(welcome, h.width, lipgloss.NewStyle().Foreground(theme.AccentSoft), cursor)...)

	lines := newCanvas(heroHeight)
	top := max((heroHeight-len(block))/2-1, 0)
	lines.draw(top, strings.Join(centerLines(block, h.width), "\n"))

	if hint.Phase != reveal.Hidden {
		style := entranceStyle(hint, lipgloss.NewStyle().Foreground(theme.FaintText))
		lines.draw(heroHeight-2, lipgloss.PlaceHorizontal(h.width, lipgloss.Center, style.Render(hint.Entry.Content)))
	}
	return strings.Join(lines, "\n")
}

// typedEntry lays out a typed entry centered-ready: one line per
// wrapped line, empty while hidden.
func typedEntry(state reveal.State, width int, style, cursor lipgloss.Style) []string {
	lines := layoutWords(state.Entry.Content, max(width-4, 10))
	if state.Phase == reveal.Hidden || state.Typewriter == nil {
		return make([]string, len(lines))
	}
	return typedLines(lines, state.Typewriter, style, cursor)
}

func letterSpaced(text string) string {
	runes := []rune(strings.ToUpper(text))
	parts := make([]string, len(runes))
	for index, r := range runes {
		parts[index] = string(r)
	}
	return strings.Join(parts, " ")
}

func (h *homePage) renderWorkOn() string {
	theme := h.env.theme
	state := h.workOn.Element(0)
	width := max(h.width-4, 10)
	heading := typedEntry(state, width, lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground), lipgloss.NewStyle().Foreground(theme.Accent))
	rule := ""
	if state.Phase != reveal.Hidden {
		ruleWidth := int(float64(lipgloss.Width(state.Entry.Content)) * tui.EaseOut(state.Progress))
		rule = lipgloss.NewStyle().Foreground(theme.Accent).Render(strings.Repeat("─", ruleWidth))
	}
	return strings.Join(centerLines([]string{strings.Join(heading, " "), rule}, h.width), "\n")
}

func (h *homePage) renderSection(section *homeSection) string {
	theme := h.env.theme
	sequencer := section.sequencer
	cursor := lipgloss.NewStyle().Foreground(theme.Accent)

	var text []string
	title := sequencer.Element(0)
	if title.Phase == reveal.Hidden {
		text = append(text, make([]string, len(section.titleLines))...)
	} else {
		style := entranceStyle(title, lipgloss.NewStyle().Bold(true).Foreground(theme.Accent))
		text = append(text, typedLines(section.titleLines, title.Typewriter, style, cursor)...)
	}
	text = append(text, "")

	for index, lines := range section.itemLines {
		item := sequencer.Element(1 + index)
		if item.Phase == reveal.Hidden {
			text = append(text, make([]string, len(lines))...)
			continue
		}
		style := entranceStyle(item, lipgloss.NewStyle().Foreground(theme.NormalText))
		bullet := entranceStyle(item, lipgloss.NewStyle().Foreground(theme.Accent)).Render("• ")
		typed := typedLines(lines, item.Typewriter, style, cursor)
		for lineIndex, line := range typed {
			if lineIndex == 0 {
				typed[lineIndex] = bullet + line
			} else {
				typed[lineIndex] = "  " + line
			}
		}
		textBlock := tui.Slide(strings.Join(typed, "\n"), tui.Offset(item.Progress, slideDistance/2))
		text = append(text, strings.Split(textBlock, "\n")...)
	}

	textBlock := tui.PadLines(tui.Slide(strings.Join(text, "\n"), tui.Offset(title.Progress, slideDistance)), section.textWidth, len(text))
	if section.section.Image == "" {
		return indent(textBlock, 2)
	}

	image := h.renderImage(section, sequencer.Element(sequencer.Len()-1))
	if section.stacked {
		return indent(textBlock+"\n\n"+image, 2)
	}
	height := section.bounds.Height
	textBlock = tui.PadLines(textBlock, section.textWidth, height)
	image = tui.PadLines(image, section.imageWidth, height)
	gap := strings.Repeat(" ", 2)
	if section.imageLeft {
		return indent(lipgloss.JoinHorizontal(lipgloss.Top, image, gap, textBlock), 2)
	}
	return indent(lipgloss.JoinHorizontal(lipgloss.Top, textBlock, gap, image), 2)
}

// renderImage draws the image reference as a framed placeholder.
func (h *homePage) renderImage(section *homeSection, state reveal.State) string {
	width := section.imageWidth
	if state.Phase == reveal.Hidden {
		return strings.Repeat("\n", imageBoxHeight-1)
	}
	theme := h.env.theme
	resolved := h.env.catalog.ResolveImage(section.section.Image)
	inner := strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.AccentSoft).Render("▣ " + filepath.Base(resolved)),
		lipgloss.NewStyle().Foreground(theme.FaintText).Render(resolved),
	}, "\n")
	border := entranceStyle(state, lipgloss.NewStyle().Foreground(theme.BorderColor)).GetForeground()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-2, 4)).
		Height(imageBoxHeight-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(inner)
	offset := tui.Offset(state.Progress, slideDistance)
	if section.imageLeft {
		return tui.Slide(box, -offset)
	}
	return tui.Slide(box, offset)
}

func (h *homePage) renderCTA() string {
	theme := h.env.theme
	title := h.cta.Element(0)
	button := h.cta.Element(1)

	lines := make([]string, 0, ctaHeight)
	if title.Phase == reveal.Hidden {
		lines = append(lines, "")
	} else {
		style := entranceStyle(title, lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground))
		lines = append(lines, lipgloss.PlaceHorizontal(h.width, lipgloss.Center, style.Render(title.Entry.Content)))
	}
	lines = append(lines, "")

	if button.Phase != reveal.Hidden {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(entranceStyle(button, lipgloss.NewStyle().Foreground(theme.Accent)).GetForeground()).
			Foreground(entranceStyle(button, lipgloss.NewStyle().Foreground(theme.SelectedForeground)).GetForeground()).
			Bold(true).
			Padding(0, 2)
		rendered := style.Render(button.Entry.Content + " →")
		lines = append(lines, strings.Split(tui.Slide(rendered, h.ctaButton.x), "\n")...)
	}
	return strings.Join(lines, "\n")
}

func indent(block string, cells int) string {
	return tui.Slide(block, cells)
}
