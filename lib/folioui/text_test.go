// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import (
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestLayoutWords(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 10, nil},
		{"fits", "hello world", 20, []string{"hello world"}},
		{"wraps", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"long word", "a supercalifragilistic b", 8, []string{"a", "supercalifragilistic", "b"}},
		{"collapses spaces", "  spaced   out  ", 20, []string{"spaced out"}},
		{"hyphen", "full-stack developer", 6, []string{"full-", "stack", "developer"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := layoutWords(test.text, test.width)
			if !slices.Equal(got, test.want) {
				t.Errorf("layoutWords(%q, %d) = %q, want %q", test.text, test.width, got, test.want)
			}
		})
	}
}

func TestRevealLines(t *testing.T) {
	lines := []string{"the quick", "brown fox"}
	tests := []struct {
		revealed int
		want     []string
	}{
		{0, []string{"", ""}},
		{3, []string{"the", ""}},
		{9, []string{"the quick", ""}},
		// The tenth character is the space at the line break.
		{10, []string{"the quick", ""}},
		{12, []string{"the quick", "br"}},
		{100, []string{"the quick", "brown fox"}},
	}
	for _, test := range tests {
		got := revealLines("the quick brown fox", lines, test.revealed)
		if !slices.Equal(got, test.want) {
			t.Errorf("revealLines(%d) = %q, want %q", test.revealed, got, test.want)
		}
	}
}

func TestRevealLinesAfterHyphenBreak(t *testing.T) {
	text := "full-stack developer"
	lines := layoutWords(text, 6)
	tests := []struct {
		revealed int
		want     []string
	}{
		{5, []string{"full-", "", ""}},
		// No separator is consumed at a hyphen break.
		{7, []string{"full-", "st", ""}},
		{11, []string{"full-", "stack", ""}},
		{12, []string{"full-", "stack", "d"}},
	}
	for _, test := range tests {
		got := revealLines(text, lines, test.revealed)
		if !slices.Equal(got, test.want) {
			t.Errorf("revealLines(%d) = %q, want %q", test.revealed, got, test.want)
		}
	}
}

func TestBionic(t *testing.T) {
	bold := lipgloss.NewStyle().Bold(true)
	normal := lipgloss.NewStyle()

	got := bionic("hello, ab x", normal, bold)
	if ansi.Strip(got) != "hello, ab x" {
		t.Errorf("text changed: %q", ansi.Strip(got))
	}

	// Rendering each half separately shows where the split fell.
	for _, want := range []string{bold.Render("hel"), normal.Render("lo,"), bold.Render("a"), normal.Render("b"), bold.Render("x")} {
		if !strings.Contains(got, want) {
			t.Errorf("bionic output %q missing %q", got, want)
		}
	}
}

func TestCanvasWindow(t *testing.T) {
	lines := newCanvas(6)
	lines.draw(1, "one\ntwo")
	lines.draw(5, "five\nclipped")

	got := strings.Split(lines.window(1, 5, 3), "\n")
	want := []string{"one  ", "two  ", "     "}
	if !slices.Equal(got, want) {
		t.Errorf("window = %q, want %q", got, want)
	}

	got = strings.Split(lines.window(5, 5, 2), "\n")
	want = []string{"five ", "     "}
	if !slices.Equal(got, want) {
		t.Errorf("window at the end = %q, want %q", got, want)
	}
}

func TestCanvasSpliceKeepsLeftColumn(t *testing.T) {
	lines := newCanvas(3)
	lines.draw(0, "card\ncard")
	lines.splice(1, 6, "bio\nmore")

	got := strings.Split(ansi.Strip(lines.window(0, 10, 3)), "\n")
	want := []string{"card      ", "card  bio ", "      more"}
	if !slices.Equal(got, want) {
		t.Errorf("window = %q, want %q", got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := rect{x: 2, y: 3, width: 4, height: 2}
	for _, point := range [][2]int{{2, 3}, {5, 4}} {
		if !r.contains(point[0], point[1]) {
			t.Errorf("%v not contained", point)
		}
	}
	for _, point := range [][2]int{{1, 3}, {6, 3}, {2, 5}, {2, 2}} {
		if r.contains(point[0], point[1]) {
			t.Errorf("%v contained", point)
		}
	}
}
