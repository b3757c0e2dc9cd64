// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for folio. All colors use ANSI
// 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Accent is the site's highlight color: active tab, titles,
	// buttons, the typewriter cursor.
	Accent     lipgloss.Color
	AccentSoft lipgloss.Color

	// Selected card or link.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Tag chips on cards and the profile card.
	TagForeground lipgloss.Color
	TagBackground lipgloss.Color

	// Links and media references in rendered pages.
	LinkForeground lipgloss.Color

	// Modal box.
	ModalBackground lipgloss.Color

	// Fuzzy filter match highlighting.
	MatchForeground lipgloss.Color

	// Log notices in the status line.
	WarnForeground  lipgloss.Color
	ErrorForeground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	Accent:     lipgloss.Color("212"), // pink
	AccentSoft: lipgloss.Color("175"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	TagForeground: lipgloss.Color("225"),
	TagBackground: lipgloss.Color("53"),

	LinkForeground: lipgloss.Color("75"),

	ModalBackground: lipgloss.Color("235"),

	MatchForeground: lipgloss.Color("220"),

	WarnForeground:  lipgloss.Color("214"),
	ErrorForeground: lipgloss.Color("196"),
}

// grayscale ramp bounds in the 256-color palette.
const (
	rampDark  = 236
	rampLight = 252
)

// FadeColor returns a gray between nearly invisible and NormalText for
// an entrance progress in [0,1]. Used to fade elements in.
func FadeColor(progress float64) lipgloss.Color {
	progress = min(max(progress, 0), 1)
	step := rampDark + int(float64(rampLight-rampDark)*progress+0.5)
	return lipgloss.Color(strconv.Itoa(step))
}
