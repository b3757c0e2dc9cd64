// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines, placed starting at (anchorX, anchorY) in screen
// cells. ANSI-aware truncation keeps the escape sequences of the
// underlying view intact on both sides of the overlay.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, ansi.StringWidth(line))
	}

	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}
		underlying := viewLines[row]

		var line strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(underlying, anchorX, "")
			line.WriteString(prefix)
			// Short lines leave a gap before the anchor.
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				line.WriteString(strings.Repeat(" ", gap))
			}
		}
		line.WriteString("\x1b[0m")
		line.WriteString(overlayLine)
		if pad := overlayWidth - ansi.StringWidth(overlayLine); pad > 0 {
			line.WriteString(strings.Repeat(" ", pad))
		}
		line.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < ansi.StringWidth(underlying) {
			line.WriteString(ansi.TruncateLeft(underlying, suffixStart, ""))
		}
		viewLines[row] = line.String()
	}
	return strings.Join(viewLines, "\n")
}

// CenterOverlay splices box into the middle of a view of the given
// size and returns the result together with the box's top-left corner,
// which callers need for mouse hit-testing.
func CenterOverlay(view, box string, width, height int) (string, int, int) {
	boxWidth, boxHeight := lipgloss.Size(box)
	anchorX := max((width-boxWidth)/2, 0)
	anchorY := max((height-boxHeight)/2, 0)
	return SpliceOverlay(view, strings.Split(box, "\n"), anchorX, anchorY), anchorX, anchorY
}

// Dim re-renders every line of a view in the faint text color, for the
// backdrop behind a modal. Existing styling is discarded.
func Dim(view string, theme Theme) string {
	style := lipgloss.NewStyle().Foreground(theme.BorderColor)
	lines := strings.Split(view, "\n")
	for index, line := range lines {
		lines[index] = style.Render(ansi.Strip(line))
	}
	return strings.Join(lines, "\n")
}

// PadLines pads or truncates every line of block to exactly width
// cells and the block to exactly height lines.
func PadLines(block string, width, height int) string {
	lines := strings.Split(block, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for index, line := range lines {
		lineWidth := ansi.StringWidth(line)
		switch {
		case lineWidth > width:
			lines[index] = ansi.Truncate(line, width, "")
		case lineWidth < width:
			lines[index] = line + strings.Repeat(" ", width-lineWidth)
		}
	}
	return strings.Join(lines, "\n")
}

func cutLeft(line string, cells int) string {
	return ansi.TruncateLeft(line, cells, "")
}
