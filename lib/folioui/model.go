// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/folio/lib/content"
	"github.com/bureau-foundation/folio/lib/pagerender"
	"github.com/bureau-foundation/folio/lib/reveal"
	"github.com/bureau-foundation/folio/lib/schedule"
	"github.com/bureau-foundation/folio/lib/tabs"
	"github.com/bureau-foundation/folio/lib/tui"
)

// Navigation bar entrance, measured from startup.
const (
	navDelay    = 100 * time.Millisecond
	navStagger  = 100 * time.Millisecond
	navDuration = 300 * time.Millisecond
)

// transitionSlide is how far, in cells, pages slide during a tab
// transition.
const transitionSlide = 6

// CatalogMsg delivers a reloaded catalog, or the error that prevented
// the reload, from the content watcher.
type CatalogMsg struct {
	Catalog *content.Catalog
	Err     error
}

// frameMsg wakes the model at a deadline it asked for. Only the most
// recently requested frame clears the pending request.
type frameMsg struct {
	generation uint64
}

// Options configures a Model.
type Options struct {
	// Theme defaults to tui.DefaultTheme.
	Theme *tui.Theme

	// Keys defaults to DefaultKeyMap.
	Keys *KeyMap

	// Now is the wall clock. Defaults to time.Now; tests substitute a
	// fake.
	Now func() time.Time

	// Scale multiplies every animation delay. Values <= 0 mean 1.
	Scale float64

	// Initial is the first tab shown.
	Initial tabs.Tab

	// Logger receives reload notices. Defaults to discarding.
	Logger *slog.Logger
}

// Model is the top-level bubbletea model for the portfolio.
type Model struct {
	env    *env
	now    func() time.Time
	queue  *schedule.Queue
	logger *slog.Logger

	navigator *tabs.Navigator
	page      page
	nav       *reveal.Sequencer

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Tab bar click regions, computed with the header.
	tabHitRanges []tabHitRange

	// Frame scheduling: frameAt is the deadline of the outstanding
	// frame request, zero when none is pending.
	frameAt         time.Time
	frameGeneration uint64

	// Status line notice from the log handler.
	notice      string
	noticeLevel slog.Level
	noticeUntil time.Time
}

// tabHitRange maps a horizontal span in the header to a tab.
type tabHitRange struct {
	startX int // Inclusive.
	endX   int // Exclusive.
	tab    tabs.Tab
}

// New creates the model and mounts the initial tab. All timelines start
// at the current Now.
func New(catalog *content.Catalog, options Options) *Model {
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	theme := tui.DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}

	model := &Model{
		now:    options.Now,
		queue:  schedule.NewQueue(options.Now()),
		logger: options.Logger,
	}
	scheduler := schedule.Scaled(model.queue, options.Scale)
	model.env = &env{
		scheduler: scheduler,
		theme:     theme,
		keys:      keys,
		catalog:   catalog,
		dispatch:  func(tab tabs.Tab) { model.navigator.Select(tab) },
	}
	model.env.renderer = pagerender.New(theme, func(identifier string) string {
		return model.env.catalog.ResolveImage(identifier)
	})

	labels := make([]string, len(tabs.All))
	for index, tab := range tabs.All {
		labels[index] = tab.Label()
	}
	model.nav = reveal.MustNew(scheduler, reveal.Stagger(reveal.Block, labels, navDelay, navStagger), reveal.Options{Duration: navDuration})
	model.nav.SetTriggered(true)

	model.navigator = tabs.New(scheduler, tabs.Hooks{
		Mount:   model.mount,
		Unmount: model.unmount,
	}, tabs.Options{Initial: options.Initial})
	return model
}

func (model *Model) mount(tab tabs.Tab) {
	model.page = model.env.buildPage(tab)
	if model.ready {
		model.page.resize(model.width, model.contentHeight())
	}
}

func (model *Model) unmount(tabs.Tab) {
	if model.page != nil {
		model.page.stop()
		model.page = nil
	}
}

// Tab returns the active tab.
func (model *Model) Tab() tabs.Tab { return model.navigator.Active() }

// Init implements tea.Model.
func (model *Model) Init() tea.Cmd {
	title := model.env.catalog.Site().Owner
	if title == "" {
		return model.frame()
	}
	return tea.Batch(tea.SetWindowTitle(title), model.frame())
}

// Update implements tea.Model. Virtual time catches up with the wall
// clock before the message is handled, so every callback that fell due
// since the last message has run.
func (model *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	model.queue.AdvanceTo(model.now())
	if !model.noticeUntil.IsZero() && !model.queue.Now().Before(model.noticeUntil) {
		model.notice = ""
		model.noticeUntil = time.Time{}
	}

	var cmd tea.Cmd
	switch message := message.(type) {
	case frameMsg:
		if message.generation == model.frameGeneration {
			model.frameAt = time.Time{}
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		if model.page != nil {
			model.page.resize(model.width, model.contentHeight())
		}

	case tea.KeyMsg:
		if message.String() == "ctrl+c" {
			return model, tea.Quit
		}
		if model.page != nil && model.page.capturing() {
			cmd = model.routeKey(message)
			break
		}
		switch {
		case key.Matches(message, model.env.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.env.keys.TabHome):
			model.env.dispatch(tabs.Home)
		case key.Matches(message, model.env.keys.TabProjects):
			model.env.dispatch(tabs.Projects)
		case key.Matches(message, model.env.keys.TabAbout):
			model.env.dispatch(tabs.About)
		case key.Matches(message, model.env.keys.NextTab):
			model.env.dispatch(tabs.All[(int(model.navigator.Active())+1)%len(tabs.All)])
		case key.Matches(message, model.env.keys.PrevTab):
			model.env.dispatch(tabs.All[(int(model.navigator.Active())+len(tabs.All)-1)%len(tabs.All)])
		default:
			cmd = model.routeKey(message)
		}

	case tea.MouseMsg:
		cmd = model.handleMouse(message)

	case tui.LogRecordMsg:
		model.notice = message.Summary
		model.noticeLevel = message.Level
		model.noticeUntil = model.queue.Now().Add(tui.LogNoticeDuration)

	case CatalogMsg:
		cmd = model.reload(message)

	default:
		if model.page != nil {
			cmd = model.page.handle(message)
		}
	}

	return model, tea.Batch(cmd, model.frame())
}

// routeKey hands a key to the mounted page unless it is on its way out.
func (model *Model) routeKey(message tea.KeyMsg) tea.Cmd {
	if model.page == nil || model.navigator.State().Phase == tabs.Exiting {
		return nil
	}
	return model.page.handleKey(message)
}

func (model *Model) handleMouse(message tea.MouseMsg) tea.Cmd {
	if message.Y == 0 {
		if isClick(message) {
			for _, hit := range model.tabHitRanges {
				if message.X >= hit.startX && message.X < hit.endX {
					model.env.dispatch(hit.tab)
					break
				}
			}
		}
		return nil
	}
	if model.page == nil || model.navigator.State().Phase == tabs.Exiting {
		return nil
	}
	y := message.Y - 1
	if y >= model.contentHeight() {
		return nil
	}
	return model.page.handleMouse(message, message.X, y)
}

// reload swaps in a new catalog and rebuilds the mounted page from it.
// The returned command does the logging: the log handler delivers
// records back into the program, which must not happen from inside
// Update.
func (model *Model) reload(message CatalogMsg) tea.Cmd {
	logger := model.logger
	if message.Err != nil {
		return func() tea.Msg {
			logger.Warn("content reload failed", "error", message.Err)
			return nil
		}
	}
	model.env.catalog = message.Catalog
	if model.page != nil {
		model.page.stop()
		model.mount(model.navigator.Mounted())
	}
	projects := len(message.Catalog.Projects())
	return func() tea.Msg {
		logger.Info("content reloaded", "projects", projects)
		return nil
	}
}

func (model *Model) animating() bool {
	if model.navigator.Transitioning() || model.nav.Animating() {
		return true
	}
	return model.page != nil && model.page.animating()
}

// frame requests the next frameMsg: one frame interval ahead while
// something is animating, otherwise at the earliest pending deadline
// (a typewriter tick, an entrance, the notice expiry). An outstanding
// request that is due no later than that is left alone.
func (model *Model) frame() tea.Cmd {
	now := model.queue.Now()
	var wake time.Time
	if model.animating() {
		wake = now.Add(tui.FrameInterval)
	}
	if next, ok := model.queue.Next(); ok && (wake.IsZero() || next.Before(wake)) {
		wake = next
	}
	if !model.noticeUntil.IsZero() && (wake.IsZero() || model.noticeUntil.Before(wake)) {
		wake = model.noticeUntil
	}
	if wake.IsZero() {
		return nil
	}
	if !model.frameAt.IsZero() && !model.frameAt.After(wake) {
		return nil
	}

	model.frameGeneration++
	model.frameAt = wake
	generation := model.frameGeneration
	return tea.Tick(max(wake.Sub(now), time.Millisecond), func(time.Time) tea.Msg {
		return frameMsg{generation: generation}
	})
}

func (model *Model) contentHeight() int {
	// Header and status line.
	return max(model.height-2, 1)
}

// View implements tea.Model.
func (model *Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	content := ""
	if model.page != nil {
		content = model.page.render()
	}
	state := model.navigator.State()
	switch state.Phase {
	case tabs.Exiting:
		content = tui.Slide(tui.Dim(content, model.env.theme), -int(float64(transitionSlide)*tui.EaseOut(state.Progress)))
	case tabs.Entering:
		content = tui.Slide(content, tui.Offset(state.Progress, transitionSlide))
	}
	content = tui.PadLines(content, model.width, model.contentHeight())

	return strings.Join([]string{model.renderHeader(), content, model.renderStatus()}, "\n")
}

// renderHeader renders the tab bar as labels embedded in a horizontal
// rule with the owner's name on the right. It also records the click
// regions of the labels.
//
// Example: ─── Home ─── Projects ─── About Me ──────────── Megan Ng ─
func (model *Model) renderHeader() string {
	theme := model.env.theme
	separatorStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	activeStyle := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(theme.Accent)
	inactiveStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	separator := separatorStyle.Render("─")
	var header strings.Builder
	header.WriteString(strings.Repeat(separator, 3))
	cursor := 3

	model.tabHitRanges = model.tabHitRanges[:0]
	for index, tab := range tabs.All {
		header.WriteString(" ")
		cursor++

		label := tab.Label()
		state := model.nav.Element(index)
		style := inactiveStyle
		if tab == model.navigator.Active() {
			style = activeStyle
		}
		switch state.Phase {
		case reveal.Hidden:
			header.WriteString(strings.Repeat(" ", lipgloss.Width(label)))
		case reveal.Entering:
			header.WriteString(entranceStyle(state, style).Render(label))
		default:
			header.WriteString(style.Render(label))
		}
		model.tabHitRanges = append(model.tabHitRanges, tabHitRange{
			startX: cursor,
			endX:   cursor + lipgloss.Width(label),
			tab:    tab,
		})
		cursor += lipgloss.Width(label)

		header.WriteString(" ")
		cursor++
		count := 3
		if index == len(tabs.All)-1 {
			count = 1
		}
		header.WriteString(strings.Repeat(separator, count))
		cursor += count
	}

	owner := model.env.catalog.Site().Owner
	ownerWidth := lipgloss.Width(owner)
	fill := model.width - cursor - ownerWidth - 3
	if owner == "" || fill < 1 {
		return header.String() + strings.Repeat(separator, max(model.width-cursor, 0))
	}
	header.WriteString(strings.Repeat(separator, fill))
	header.WriteString(" " + lipgloss.NewStyle().Foreground(theme.HeaderForeground).Render(owner) + " ")
	header.WriteString(separator)
	return header.String()
}

// renderStatus renders the bottom line: a recent log notice if there is
// one, otherwise key hints for the mounted page.
func (model *Model) renderStatus() string {
	theme := model.env.theme
	if model.notice != "" {
		color := theme.NormalText
		switch {
		case model.noticeLevel >= slog.LevelError:
			color = theme.ErrorForeground
		case model.noticeLevel >= slog.LevelWarn:
			color = theme.WarnForeground
		}
		return lipgloss.NewStyle().Foreground(color).Bold(true).
			Render(tui.PadLines(" "+model.notice, model.width, 1))
	}

	help := " 1/2/3 tabs  q quit"
	if model.page != nil {
		help = " " + model.page.help() + " " + help
	}
	return lipgloss.NewStyle().Foreground(theme.HelpText).Render(tui.PadLines(help, model.width, 1))
}
