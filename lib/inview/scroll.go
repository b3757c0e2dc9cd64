// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inview

// ScrollObserver is an Observer for a vertically scrolling layout. It
// keeps the current window and recomputes visibility only when Scroll
// or Refresh is called. Notifications fire on transitions only.
//
// Not safe for concurrent use. Notify callbacks run synchronously
// inside Observe, Scroll and Refresh, and may call stop functions or
// Observe again.
type ScrollObserver struct {
	window       Span
	observations []*observation
}

type observation struct {
	element   Element
	threshold float64
	notify    func(bool)
	inView    bool
	removed   bool
}

// NewScrollObserver returns an observer for the given initial window.
func NewScrollObserver(window Span) *ScrollObserver {
	return &ScrollObserver{window: window}
}

// Window returns the current window.
func (o *ScrollObserver) Window() Span { return o.window }

// Observe implements Observer.
func (o *ScrollObserver) Observe(element Element, threshold float64, notify func(bool)) func() {
	entry := &observation{
		element:   element,
		threshold: threshold,
		notify:    notify,
	}
	o.observations = append(o.observations, entry)
	o.evaluate(entry)
	return func() {
		if entry.removed {
			return
		}
		entry.removed = true
		for i, candidate := range o.observations {
			if candidate == entry {
				o.observations = append(o.observations[:i], o.observations[i+1:]...)
				break
			}
		}
	}
}

// Scroll moves or resizes the window and notifies elements whose
// visibility changed.
func (o *ScrollObserver) Scroll(window Span) {
	o.window = window
	o.Refresh()
}

// Refresh re-evaluates every element against the current window. Call
// after the layout moved elements without the window changing.
func (o *ScrollObserver) Refresh() {
	// Snapshot: callbacks may register or stop observations.
	snapshot := append([]*observation(nil), o.observations...)
	for _, entry := range snapshot {
		o.evaluate(entry)
	}
}

// Len returns the number of registered elements.
func (o *ScrollObserver) Len() int { return len(o.observations) }

func (o *ScrollObserver) evaluate(entry *observation) {
	if entry.removed {
		return
	}
	visible := Visible(Ratio(entry.element.Bounds(), o.window), entry.threshold)
	if visible == entry.inView {
		return
	}
	entry.inView = visible
	entry.notify(visible)
}
