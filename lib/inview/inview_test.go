// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inview

import (
	"slices"
	"testing"
)

func TestRatio(t *testing.T) {
	window := Span{Top: 10, Height: 20}
	tests := []struct {
		name    string
		element Span
		want    float64
	}{
		{"fully inside", Span{Top: 12, Height: 5}, 1},
		{"above", Span{Top: 0, Height: 10}, 0},
		{"below", Span{Top: 30, Height: 4}, 0},
		{"top clipped", Span{Top: 5, Height: 10}, 0.5},
		{"bottom clipped", Span{Top: 25, Height: 10}, 0.5},
		{"taller than window", Span{Top: 0, Height: 40}, 0.5},
		{"zero height inside", Span{Top: 15}, 1},
		{"zero height at bottom edge", Span{Top: 30}, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Ratio(test.element, window); got != test.want {
				t.Errorf("Ratio(%+v) = %v, want %v", test.element, got, test.want)
			}
		})
	}
}

func TestVisibleRequiresSomeOverlap(t *testing.T) {
	if Visible(0, 0) {
		t.Error("Visible(0, 0) = true; an element entirely off screen is never in view")
	}
	if !Visible(0.3, 0.3) {
		t.Error("Visible(0.3, 0.3) = false; reaching the threshold counts")
	}
	if Visible(0.29, 0.3) {
		t.Error("Visible(0.29, 0.3) = true")
	}
}

type box struct{ span Span }

func (b *box) Bounds() Span { return b.span }

func TestScrollObserverTransitionsOnly(t *testing.T) {
	observer := NewScrollObserver(Span{Top: 0, Height: 10})
	element := &box{Span{Top: 20, Height: 10}}
	var events []bool
	observer.Observe(element, 0.3, func(in bool) { events = append(events, in) })

	if len(events) != 0 {
		t.Fatalf("off-screen element notified at registration: %v", events)
	}

	observer.Scroll(Span{Top: 12, Height: 10}) // 2 of 10 rows
	observer.Scroll(Span{Top: 13, Height: 10}) // 3 of 10 rows
	observer.Scroll(Span{Top: 15, Height: 10}) // still in view
	observer.Scroll(Span{Top: 40, Height: 10}) // gone
	observer.Scroll(Span{Top: 50, Height: 10})

	want := []bool{true, false}
	if !slices.Equal(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
}

func TestScrollObserverInitiallyVisible(t *testing.T) {
	observer := NewScrollObserver(Span{Top: 0, Height: 10})
	var events []bool
	observer.Observe(&box{Span{Top: 2, Height: 3}}, 0.3, func(in bool) { events = append(events, in) })
	if !slices.Equal(events, []bool{true}) {
		t.Fatalf("events = %v, want [true]", events)
	}
}

func TestScrollObserverRefreshAfterLayoutChange(t *testing.T) {
	observer := NewScrollObserver(Span{Top: 0, Height: 10})
	element := &box{Span{Top: 50, Height: 5}}
	inView := false
	observer.Observe(element, 0.3, func(in bool) { inView = in })

	element.span.Top = 4
	if inView {
		t.Fatal("observer reacted without Scroll or Refresh")
	}
	observer.Refresh()
	if !inView {
		t.Fatal("Refresh did not pick up the moved element")
	}
}

func TestScrollObserverStop(t *testing.T) {
	observer := NewScrollObserver(Span{Top: 0, Height: 10})
	calls := 0
	stop := observer.Observe(&box{Span{Top: 20, Height: 5}}, 0.3, func(bool) { calls++ })
	stop()
	stop()
	if observer.Len() != 0 {
		t.Fatalf("Len() = %d after stop, want 0", observer.Len())
	}
	observer.Scroll(Span{Top: 18, Height: 10})
	if calls != 0 {
		t.Fatalf("stopped observation notified %d times", calls)
	}
}

func TestRepeatableTrigger(t *testing.T) {
	observer := NewScrollObserver(Span{Top: 0, Height: 10})
	trigger := NewTrigger(observer, &box{Span{Top: 20, Height: 10}}, Repeatable(DefaultThreshold))
	var events []bool
	trigger.OnChange(func(in bool) { events = append(events, in) })

	observer.Scroll(Span{Top: 15, Height: 10})
	observer.Scroll(Span{Top: 0, Height: 10})
	observer.Scroll(Span{Top: 15, Height: 10})

	want := []bool{true, false, true}
	if !slices.Equal(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	if !trigger.InView() {
		t.Error("InView() = false while visible")
	}
}

func TestOneShotTriggerLatches(t *testing.T) {
	observer := NewScrollObserver(Span{Top: 0, Height: 10})
	trigger := NewTrigger(observer, &box{Span{Top: 20, Height: 10}}, OneShot(DefaultThreshold))
	var events []bool
	trigger.OnChange(func(in bool) { events = append(events, in) })

	observer.Scroll(Span{Top: 15, Height: 10})
	observer.Scroll(Span{Top: 0, Height: 10})
	observer.Scroll(Span{Top: 15, Height: 10})

	if !slices.Equal(events, []bool{true}) {
		t.Fatalf("events = %v, want [true]", events)
	}
	if !trigger.InView() {
		t.Fatal("one-shot trigger reverted to false")
	}
	if observer.Len() != 0 {
		t.Errorf("latched trigger still observing (Len() = %d)", observer.Len())
	}
}

func TestOneShotTriggerVisibleAtCreation(t *testing.T) {
	observer := NewScrollObserver(Span{Top: 0, Height: 10})
	trigger := NewTrigger(observer, &box{Span{Top: 1, Height: 2}}, OneShot(DefaultThreshold))
	if !trigger.InView() {
		t.Fatal("trigger on a visible element did not start in view")
	}
	if observer.Len() != 0 {
		t.Errorf("latched trigger still observing (Len() = %d)", observer.Len())
	}
	called := false
	trigger.OnChange(func(in bool) { called = in })
	if !called {
		t.Error("OnChange on an in-view trigger did not replay true")
	}
}

func TestTriggerStop(t *testing.T) {
	observer := NewScrollObserver(Span{Top: 0, Height: 10})
	trigger := NewTrigger(observer, &box{Span{Top: 20, Height: 10}}, Repeatable(DefaultThreshold))
	calls := 0
	trigger.OnChange(func(bool) { calls++ })
	trigger.Stop()
	observer.Scroll(Span{Top: 20, Height: 10})
	if calls != 0 || trigger.InView() {
		t.Fatalf("stopped trigger changed: calls=%d InView()=%v", calls, trigger.InView())
	}
}

func TestTriggerListenerAddedWhileNotifying(t *testing.T) {
	observer := NewScrollObserver(Span{Top: 0, Height: 10})
	trigger := NewTrigger(observer, &box{Span{Top: 20, Height: 10}}, Repeatable(DefaultThreshold))
	var late []bool
	trigger.OnChange(func(in bool) {
		if in && late == nil {
			late = []bool{}
			trigger.OnChange(func(in bool) { late = append(late, in) })
		}
	})

	observer.Scroll(Span{Top: 15, Height: 10})
	if !slices.Equal(late, []bool{true}) {
		t.Fatalf("late listener events = %v, want [true] from the replay only", late)
	}
	observer.Scroll(Span{Top: 0, Height: 10})
	if !slices.Equal(late, []bool{true, false}) {
		t.Fatalf("late listener events = %v, want [true false]", late)
	}
}
