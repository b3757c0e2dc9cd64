// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	// Builds fzf's character class and bonus tables.
	algo.Init("default")
}

// FuzzyResult is the outcome of matching a pattern against one text.
// Score is zero when the pattern does not match.
type FuzzyResult struct {
	Score int

	// Positions are the rune indices of matched characters in the
	// original text, for highlighting.
	Positions []int
}

// FuzzyMatch matches pattern against text with fzf's V2 algorithm,
// ignoring case. An empty pattern matches everything with score 1. The
// slab may be nil; passing one reuses scratch memory across calls.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Score: 1}
	}
	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}
	match := FuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = append([]int(nil), (*positions)...)
	}
	return match
}

// HighlightMatches renders text with the runes at positions in the
// match style and the rest in the base style.
func HighlightMatches(text string, positions []int, base, match lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}
	marked := make(map[int]bool, len(positions))
	for _, position := range positions {
		marked[position] = true
	}
	var result strings.Builder
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runMatched {
			result.WriteString(match.Render(string(run)))
		} else {
			result.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}
	for index, character := range []rune(text) {
		if marked[index] != runMatched {
			flush()
			runMatched = marked[index]
		}
		run = append(run, character)
	}
	flush()
	return result.String()
}
