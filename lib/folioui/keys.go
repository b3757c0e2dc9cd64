// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the portfolio UI.
type KeyMap struct {
	// Tab switching.
	TabHome     key.Binding
	TabProjects key.Binding
	TabAbout    key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding

	// Scrolling and selection (context-sensitive: page scroll on Home
	// and About, card selection in the gallery, page scroll in the
	// project modal).
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	// Activate the focused control: open a card, press the CTA button,
	// flip the profile card.
	Select key.Binding

	// Gallery filter.
	Filter key.Binding

	// Close the modal, clear the filter.
	Back key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k/h/l) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	TabHome: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "home"),
	),
	TabProjects: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "projects"),
	),
	TabAbout: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "about"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous tab"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown", " "),
		key.WithHelp("C-d", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
