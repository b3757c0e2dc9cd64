// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inview reports whether laid-out elements are visible inside a
// scrolling window.
//
// Observer is the capability interface: consumers register an element
// with a visibility threshold and receive a boolean whenever the
// element crosses it. ScrollObserver implements Observer for a
// one-dimensional row layout and only does work when its owner reports
// a scroll, a resize or a layout change. Trigger layers the repeatable
// and one-shot policies on top of any Observer.
package inview

// Span is a run of rows: an element's extent in layout coordinates, or
// the window onto the layout.
type Span struct {
	Top    int
	Height int
}

// Bottom returns the first row after the span.
func (s Span) Bottom() int { return s.Top + s.Height }

// Element is anything with a position in the scrolling layout.
type Element interface {
	Bounds() Span
}

// ElementFunc adapts a function to the Element interface.
type ElementFunc func() Span

// Bounds implements Element.
func (f ElementFunc) Bounds() Span { return f() }

// Observer watches elements for visibility changes.
type Observer interface {
	// Observe registers element. notify is called with true when the
	// visible fraction of element reaches threshold and with false
	// when it drops below again. If the element is already visible at
	// registration, notify(true) is called before Observe returns.
	// The returned stop function unregisters the element; it is safe to
	// call more than once.
	Observe(element Element, threshold float64, notify func(inView bool)) (stop func())
}

// Ratio returns the fraction of element rows that fall inside window.
// A zero-height element is either fully visible (its top row is inside
// the window) or not at all.
func Ratio(element, window Span) float64 {
	if element.Height <= 0 {
		if element.Top >= window.Top && element.Top < window.Bottom() {
			return 1
		}
		return 0
	}
	top := max(element.Top, window.Top)
	bottom := min(element.Bottom(), window.Bottom())
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(element.Height)
}

// Visible applies the threshold rule shared by every observer: some
// part of the element must be on screen and the visible fraction must
// reach threshold.
func Visible(ratio, threshold float64) bool {
	return ratio > 0 && ratio >= threshold
}
