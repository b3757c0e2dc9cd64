// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"math"
	"strings"
	"time"
)

// FrameInterval is the redraw interval while anything is mid-entrance
// or mid-transition. Text reveals between entrances are driven by their
// own deadlines instead.
const FrameInterval = 33 * time.Millisecond

// EaseOut maps linear progress in [0,1] to a decelerating curve.
func EaseOut(progress float64) float64 {
	progress = min(max(progress, 0), 1)
	return 1 - math.Pow(1-progress, 3)
}

// Offset returns how many cells an element entering from distance
// cells away is still displaced at the given progress.
func Offset(progress float64, distance int) int {
	return int(math.Round(float64(distance) * (1 - EaseOut(progress))))
}

// Slide shifts every line of block horizontally by offset cells:
// positive offsets indent, negative offsets cut from the left edge.
func Slide(block string, offset int) string {
	if offset == 0 || block == "" {
		return block
	}
	lines := strings.Split(block, "\n")
	for index, line := range lines {
		if offset > 0 {
			lines[index] = strings.Repeat(" ", offset) + line
		} else {
			lines[index] = cutLeft(line, -offset)
		}
	}
	return strings.Join(lines, "\n")
}
