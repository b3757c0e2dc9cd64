// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reveal

import (
	"errors"
	"testing"
	"time"

	"github.com/bureau-foundation/folio/lib/inview"
	"github.com/bureau-foundation/folio/lib/schedule"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewRejectsDecreasingDelays(t *testing.T) {
	queue := schedule.NewQueue(epoch)
	_, err := New(queue, []Entry{
		{Kind: Title, Delay: 500 * time.Millisecond},
		{Kind: Paragraph, Delay: 100 * time.Millisecond},
	}, Options{})
	if !errors.Is(err, ErrDelayOrder) {
		t.Fatalf("New() error = %v, want ErrDelayOrder", err)
	}
}

func TestSectionDelays(t *testing.T) {
	entries := Section("Machine Learning & AI", []string{"a", "b", "c"}, "images/ai.jpg")
	want := []time.Duration{300, 800, 1000, 1200, 1400}
	if len(entries) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		if entry.Delay != want[i]*time.Millisecond {
			t.Errorf("entries[%d].Delay = %v, want %v", i, entry.Delay, want[i]*time.Millisecond)
		}
	}
	if entries[0].Kind != Title || entries[0].Speed != TitleSpeed {
		t.Errorf("title entry = %+v", entries[0])
	}
	if entries[2].Kind != ListItem || entries[2].Speed != ItemSpeed {
		t.Errorf("list entry = %+v", entries[2])
	}
	if entries[4].Kind != Image || entries[4].Typed() {
		t.Errorf("image entry = %+v", entries[4])
	}

	if _, err := New(schedule.NewQueue(epoch), entries, Options{}); err != nil {
		t.Fatalf("Section output rejected: %v", err)
	}
}

func TestSectionWithoutImage(t *testing.T) {
	entries := Section("Title", []string{"only"}, "")
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
}

func TestEntrancesStartAtTheirDelays(t *testing.T) {
	queue := schedule.NewQueue(epoch)
	sequencer := MustNew(queue, Section("Title", []string{"first", "second"}, "img"), Options{})

	queue.Advance(time.Second)
	if sequencer.Element(0).Phase != Hidden {
		t.Fatal("entries entered before the trigger fired")
	}

	sequencer.SetTriggered(true)
	checks := []struct {
		at    time.Duration
		index int
		want  Phase
	}{
		{299 * time.Millisecond, 0, Hidden},
		{300 * time.Millisecond, 0, Entering},
		{799 * time.Millisecond, 1, Hidden},
		{800 * time.Millisecond, 1, Entering},
		{999 * time.Millisecond, 2, Hidden},
		{1000 * time.Millisecond, 2, Entering},
		{1100 * time.Millisecond, 0, Shown},
		{1200 * time.Millisecond, 3, Entering},
	}
	start := queue.Now()
	for _, check := range checks {
		queue.AdvanceTo(start.Add(check.at))
		if got := sequencer.Element(check.index).Phase; got != check.want {
			t.Errorf("at %v entry %d phase = %d, want %d", check.at, check.index, got, check.want)
		}
	}
}

func TestProgressAcrossEntrance(t *testing.T) {
	queue := schedule.NewQueue(epoch)
	sequencer := MustNew(queue, Stagger(Block, []string{"card"}, 0, 0), Options{Duration: 300 * time.Millisecond})

	sequencer.SetTriggered(true)
	if got := sequencer.Element(0); got.Phase != Entering || got.Progress != 0 {
		t.Fatalf("zero-delay entry = phase %d progress %v, want Entering at 0", got.Phase, got.Progress)
	}
	if !sequencer.Animating() {
		t.Fatal("Animating() = false mid-entrance")
	}
	queue.Advance(150 * time.Millisecond)
	if got := sequencer.Element(0).Progress; got != 0.5 {
		t.Errorf("Progress halfway = %v, want 0.5", got)
	}
	queue.Advance(150 * time.Millisecond)
	if got := sequencer.Element(0); got.Phase != Shown || got.Progress != 1 {
		t.Errorf("after duration: phase %d progress %v, want Shown at 1", got.Phase, got.Progress)
	}
	if sequencer.Animating() {
		t.Error("Animating() = true after every entry settled")
	}
	if sequencer.Element(0).Text() != "card" {
		t.Errorf("Text() = %q, want %q", sequencer.Element(0).Text(), "card")
	}
}

func TestTypedEntriesTypeAfterEntering(t *testing.T) {
	queue := schedule.NewQueue(epoch)
	sequencer := MustNew(queue, Section("Title", nil, ""), Options{})
	sequencer.SetTriggered(true)

	queue.Advance(TitleDelay)
	title := sequencer.Element(0)
	if title.Text() != "" {
		t.Fatalf("title text at entrance = %q, want empty", title.Text())
	}
	queue.Advance(2 * TitleSpeed)
	if got := sequencer.Element(0).Text(); got != "Ti" {
		t.Fatalf("title text two ticks in = %q, want %q", got, "Ti")
	}
	queue.Advance(time.Second)
	if !sequencer.Complete() {
		t.Fatal("Complete() = false after the title finished")
	}
}

func TestRepeatableRetriggerReplays(t *testing.T) {
	queue := schedule.NewQueue(epoch)
	observer := inview.NewScrollObserver(inview.Span{Top: 0, Height: 10})
	trigger := inview.NewTrigger(observer, inview.ElementFunc(func() inview.Span {
		return inview.Span{Top: 20, Height: 10}
	}), inview.Repeatable(inview.DefaultThreshold))
	sequencer := MustNew(queue, Section("Title", []string{"item"}, "img"), Options{})
	sequencer.Bind(trigger)

	observer.Scroll(inview.Span{Top: 15, Height: 10})
	queue.Advance(5 * time.Second)
	if !sequencer.Complete() {
		t.Fatal("sequence did not complete while in view")
	}

	observer.Scroll(inview.Span{Top: 0, Height: 10})
	for i := 0; i < sequencer.Len(); i++ {
		state := sequencer.Element(i)
		if state.Phase != Hidden || state.Text() != "" {
			t.Fatalf("entry %d after leaving view: phase %d text %q", i, state.Phase, state.Text())
		}
		if state.Typewriter != nil && state.Typewriter.Revealed() != 0 {
			t.Fatalf("entry %d typewriter kept %d characters", i, state.Typewriter.Revealed())
		}
	}
	if queue.Pending() != 0 {
		t.Fatalf("Pending() after leaving view = %d, want 0", queue.Pending())
	}

	observer.Scroll(inview.Span{Top: 15, Height: 10})
	queue.Advance(TitleDelay + TitleSpeed)
	if got := sequencer.Element(0).Text(); got != "T" {
		t.Fatalf("title after re-entering = %q, want %q", got, "T")
	}
}

func TestLeavingMidSequenceCancelsPendingEntrances(t *testing.T) {
	queue := schedule.NewQueue(epoch)
	sequencer := MustNew(queue, Section("Title", []string{"a", "b"}, ""), Options{})
	sequencer.SetTriggered(true)
	queue.Advance(500 * time.Millisecond)
	sequencer.SetTriggered(false)
	queue.Advance(5 * time.Second)
	for i := 0; i < sequencer.Len(); i++ {
		if phase := sequencer.Element(i).Phase; phase != Hidden {
			t.Fatalf("entry %d phase = %d after the trigger dropped", i, phase)
		}
	}
}

func TestStop(t *testing.T) {
	queue := schedule.NewQueue(epoch)
	sequencer := MustNew(queue, Section("Title", []string{"a"}, "img"), Options{})
	sequencer.SetTriggered(true)
	queue.Advance(900 * time.Millisecond)

	sequencer.Stop()
	if queue.Pending() != 0 {
		t.Fatalf("Pending() after Stop = %d, want 0", queue.Pending())
	}
	sequencer.SetTriggered(false)
	sequencer.SetTriggered(true)
	if queue.Pending() != 0 {
		t.Fatal("stopped sequencer reacted to its trigger")
	}
}
