// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inview

import "slices"

// DefaultThreshold is the visible fraction used throughout the site.
const DefaultThreshold = 0.3

// Options is the per-site trigger policy.
type Options struct {
	// Threshold is the visible fraction in [0,1] at which the element
	// counts as in view.
	Threshold float64

	// Once latches the trigger: after the first true it stays true and
	// stops observing.
	Once bool
}

// Repeatable returns options for a trigger that follows the element in
// and out of view.
func Repeatable(threshold float64) Options {
	return Options{Threshold: threshold}
}

// OneShot returns options for a trigger that fires once and latches.
func OneShot(threshold float64) Options {
	return Options{Threshold: threshold, Once: true}
}

// Trigger tracks one element's in-view state under a policy.
type Trigger struct {
	options   Options
	inView    bool
	latched   bool
	stop      func()
	listeners []func(bool)
}

// NewTrigger starts observing element. If it is already visible the
// trigger starts in view.
func NewTrigger(observer Observer, element Element, options Options) *Trigger {
	trigger := &Trigger{options: options}
	trigger.stop = observer.Observe(element, options.Threshold, trigger.update)
	if trigger.latched {
		trigger.stopObserving()
	}
	return trigger
}

// InView reports the current state.
func (t *Trigger) InView() bool { return t.inView }

// Once reports whether the trigger latches.
func (t *Trigger) Once() bool { return t.options.Once }

// OnChange registers a listener called on every state change. If the
// trigger is already in view the listener is called immediately with
// true.
func (t *Trigger) OnChange(listener func(inView bool)) {
	t.listeners = append(t.listeners, listener)
	if t.inView {
		listener(true)
	}
}

// Stop unregisters from the observer and drops listeners.
func (t *Trigger) Stop() {
	t.stopObserving()
	t.listeners = nil
}

func (t *Trigger) update(inView bool) {
	if t.latched || inView == t.inView {
		return
	}
	t.inView = inView
	if inView && t.options.Once {
		t.latched = true
		// stop is nil while NewTrigger is still inside Observe.
		if t.stop != nil {
			t.stopObserving()
		}
	}
	for _, listener := range slices.Clone(t.listeners) {
		listener(inView)
	}
}

func (t *Trigger) stopObserving() {
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}
