// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/folio/lib/content"
	"github.com/bureau-foundation/folio/lib/pagerender"
	"github.com/bureau-foundation/folio/lib/schedule"
	"github.com/bureau-foundation/folio/lib/tabs"
	"github.com/bureau-foundation/folio/lib/tui"
)

// env is what every page shares with the model. The catalog pointer is
// swapped in place when content reloads.
type env struct {
	scheduler schedule.Scheduler
	theme     tui.Theme
	keys      KeyMap
	catalog   *content.Catalog
	renderer  *pagerender.Renderer

	// dispatch changes tabs through the navigator.
	dispatch func(tabs.Tab)
}

// page is the view tree of one mounted tab. Coordinates passed to
// handleMouse are relative to the content area.
type page interface {
	resize(width, height int)
	handleKey(message tea.KeyMsg) tea.Cmd
	handleMouse(message tea.MouseMsg, x, y int) tea.Cmd
	handle(message tea.Msg) tea.Cmd

	// render returns exactly height lines of width cells.
	render() string

	// animating reports whether an entrance or transition is playing
	// and the model should redraw at the frame interval.
	animating() bool

	// capturing reports whether the page owns all key input (a text
	// field or modal has focus).
	capturing() bool

	help() string

	// stop cancels every timer and observation the page holds.
	stop()
}

func (e *env) buildPage(tab tabs.Tab) page {
	switch tab {
	case tabs.Projects:
		return newProjectsPage(e)
	case tabs.About:
		return newAboutPage(e)
	default:
		return newHomePage(e)
	}
}

func isWheel(message tea.MouseMsg) (int, bool) {
	if message.Action != tea.MouseActionPress {
		return 0, false
	}
	switch message.Button {
	case tea.MouseButtonWheelUp:
		return -wheelStep, true
	case tea.MouseButtonWheelDown:
		return wheelStep, true
	}
	return 0, false
}

func isClick(message tea.MouseMsg) bool {
	return message.Action == tea.MouseActionPress && message.Button == tea.MouseButtonLeft
}

// wheelStep is how many lines one wheel notch scrolls.
const wheelStep = 3
