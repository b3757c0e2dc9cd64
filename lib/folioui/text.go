// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/folio/lib/reveal"
	"github.com/bureau-foundation/folio/lib/tui"
	"github.com/bureau-foundation/folio/lib/typewriter"
)

// normalize collapses whitespace runs to single spaces, so character
// counts of typed text line up with the word layout below.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// layoutWords wraps normalized text into lines of at most width
// cells. Lines break at spaces, which are dropped, or after hyphens. A
// word wider than width gets a line of its own.
func layoutWords(text string, width int) []string {
	text = normalize(text)
	if text == "" {
		return nil
	}
	return strings.Split(ansi.Wordwrap(text, max(width, 1), ""), "\n")
}

// revealLines cuts the lines that layoutWords made from text down to
// the first revealed characters of text. The result always has
// len(lines) entries, so a partially typed text occupies its final
// height from the start.
func revealLines(text string, lines []string, revealed int) []string {
	source := []rune(normalize(text))
	shown := make([]string, len(lines))
	position := 0
	for index, line := range lines {
		if revealed <= position {
			break
		}
		runes := []rune(line)
		shown[index] = string(runes[:min(len(runes), revealed-position)])
		position += len(runes)
		// A break at a space consumes it; a break after a hyphen does not.
		if position < len(source) && source[position] == ' ' {
			position++
		}
	}
	return shown
}

// typedLines renders a laid-out typed entry: the revealed part of each
// line in style, plus the blinking cursor after the last revealed
// character while typing.
func typedLines(lines []string, job *typewriter.Job, style, cursor lipgloss.Style) []string {
	shown := revealLines(job.Text(), lines, job.Revealed())
	last := -1
	for index, line := range shown {
		if line != "" {
			shown[index] = style.Render(line)
			last = index
		}
	}
	if job.CursorVisible() {
		if last < 0 {
			last = 0
			if len(shown) == 0 {
				shown = append(shown, "")
			}
		}
		shown[last] += cursor.Render(typewriter.Cursor)
	}
	return shown
}

// entranceStyle returns final while shown and a gray ramp toward it
// while entering.
func entranceStyle(state reveal.State, final lipgloss.Style) lipgloss.Style {
	if state.Phase == reveal.Shown || state.Progress >= 1 {
		return final
	}
	return final.Foreground(tui.FadeColor(tui.EaseOut(state.Progress)))
}

// bionic emphasizes the first half (rounded up) of the letters of each
// word, leaving punctuation and spacing untouched.
func bionic(text string, normal, bold lipgloss.Style) string {
	var result strings.Builder
	for index, word := range strings.Split(text, " ") {
		if index > 0 {
			result.WriteString(normal.Render(" "))
		}
		if word == "" {
			continue
		}
		runes := []rune(word)
		letters := 0
		for _, r := range runes {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				letters++
			}
		}
		emphasized := (letters + 1) / 2
		split := 0
		for split < len(runes) && emphasized > 0 {
			if unicode.IsLetter(runes[split]) || unicode.IsDigit(runes[split]) {
				emphasized--
			}
			split++
		}
		if split > 0 {
			result.WriteString(bold.Render(string(runes[:split])))
		}
		if split < len(runes) {
			result.WriteString(normal.Render(string(runes[split:])))
		}
	}
	return result.String()
}

// centerLines centers each line in width cells.
func centerLines(lines []string, width int) []string {
	centered := make([]string, len(lines))
	for index, line := range lines {
		centered[index] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return centered
}

// canvas is a fixed-height stack of lines that blocks are drawn into
// at absolute rows.
type canvas []string

func newCanvas(height int) canvas {
	return make(canvas, max(height, 0))
}

// draw places block with its first line at row, clipping anything
// outside the canvas.
func (c canvas) draw(row int, block string) {
	if block == "" {
		return
	}
	for offset, line := range strings.Split(block, "\n") {
		if target := row + offset; target >= 0 && target < len(c) {
			c[target] = line
		}
	}
}

// splice places block with its top-left corner at (row, column),
// keeping whatever is already drawn to either side of it.
func (c canvas) splice(row, column int, block string) {
	if block == "" {
		return
	}
	for offset, line := range strings.Split(block, "\n") {
		if target := row + offset; target >= 0 && target < len(c) {
			c[target] = tui.SpliceOverlay(c[target], []string{line}, column, 0)
		}
	}
}

// window returns height lines starting at top, padded to width.
func (c canvas) window(top, width, height int) string {
	top = min(max(top, 0), max(len(c)-1, 0))
	end := min(top+height, len(c))
	var visible []string
	if top < end {
		visible = c[top:end]
	}
	return tui.PadLines(strings.Join(visible, "\n"), width, height)
}

// rect is a screen region in content-area cells, used for mouse hit
// testing.
type rect struct {
	x, y, width, height int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.width && y >= r.y && y < r.y+r.height
}
