// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reveal

import (
	"errors"
	"fmt"
	"time"

	"github.com/bureau-foundation/folio/lib/schedule"
	"github.com/bureau-foundation/folio/lib/typewriter"
)

// ErrDelayOrder is returned by New when entry delays decrease in
// document order.
var ErrDelayOrder = errors.New("reveal: entry delays must be non-decreasing")

// Kind identifies what an entry renders as.
type Kind int

const (
	Title Kind = iota
	Paragraph
	ListItem
	Image
	Block
)

var kindNames = [...]string{"title", "paragraph", "list-item", "image", "block"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Entry is one element of a section.
type Entry struct {
	Kind Kind

	// Delay is measured from the moment the trigger fires.
	Delay time.Duration

	// Content is the text to show, or the image identifier.
	Content string

	// Speed is the typing interval. Zero means the content appears
	// whole as the entry enters.
	Speed time.Duration
}

// Typed reports whether the entry is revealed by a typewriter.
func (e Entry) Typed() bool { return e.Speed > 0 }

// Phase is an entry's place in its entrance.
type Phase int

const (
	Hidden Phase = iota
	Entering
	Shown
)

// DefaultDuration is the entrance length used when Options.Duration is
// not positive.
const DefaultDuration = 800 * time.Millisecond

// Options configures a Sequencer.
type Options struct {
	// Duration is how long each entry spends in the Entering phase.
	Duration time.Duration
}

// Source is a boolean signal the sequencer can follow, satisfied by
// *inview.Trigger.
type Source interface {
	OnChange(listener func(inView bool))
}

// State is a snapshot of one entry for rendering.
type State struct {
	Entry Entry
	Phase Phase

	// Progress runs from 0 to 1 across the Entering phase. It is 0
	// while Hidden and 1 once Shown.
	Progress float64

	// Typewriter is nil for untyped entries.
	Typewriter *typewriter.Job
}

// Text returns the content as it should currently be drawn: nothing
// while hidden, the revealed prefix for typed entries, the whole
// content otherwise.
func (s State) Text() string {
	if s.Phase == Hidden {
		return ""
	}
	if s.Typewriter != nil {
		return s.Typewriter.Displayed()
	}
	return s.Entry.Content
}

// Sequencer runs the entrance of one group of entries.
type Sequencer struct {
	scheduler schedule.Scheduler
	duration  time.Duration
	elements  []*element
	triggered bool
	stopped   bool
}

type element struct {
	entry     Entry
	phase     Phase
	enteredAt time.Time
	job       *typewriter.Job
	enter     schedule.Handle
	settle    schedule.Handle
}

// New validates entries and returns a Sequencer in the untriggered
// state.
func New(scheduler schedule.Scheduler, entries []Entry, options Options) (*Sequencer, error) {
	for i := 1; i < len(entries); i++ {
		if entries[i].Delay < entries[i-1].Delay {
			return nil, fmt.Errorf("%w: entry %d (%v) follows %v", ErrDelayOrder, i, entries[i].Delay, entries[i-1].Delay)
		}
	}
	if options.Duration <= 0 {
		options.Duration = DefaultDuration
	}
	sequencer := &Sequencer{
		scheduler: scheduler,
		duration:  options.Duration,
		elements:  make([]*element, len(entries)),
	}
	for i, entry := range entries {
		item := &element{entry: entry}
		if entry.Typed() {
			item.job = typewriter.New(scheduler, entry.Content, typewriter.Options{
				Speed:  entry.Speed,
				Parked: true,
			})
		}
		sequencer.elements[i] = item
	}
	return sequencer, nil
}

// MustNew is New for entry lists built from constants, such as the
// output of Section and Stagger. It panics on invalid ordering.
func MustNew(scheduler schedule.Scheduler, entries []Entry, options Options) *Sequencer {
	sequencer, err := New(scheduler, entries, options)
	if err != nil {
		panic(err)
	}
	return sequencer
}

// Bind makes the sequencer follow source.
func (s *Sequencer) Bind(source Source) {
	source.OnChange(s.SetTriggered)
}

// Triggered reports whether the sequence is currently running or
// complete.
func (s *Sequencer) Triggered() bool { return s.triggered }

// SetTriggered starts the sequence on a false-to-true change and resets
// it on a true-to-false change.
func (s *Sequencer) SetTriggered(triggered bool) {
	if s.stopped || triggered == s.triggered {
		return
	}
	s.triggered = triggered
	if !triggered {
		s.reset()
		return
	}
	for _, item := range s.elements {
		item := item
		item.enter = s.scheduler.Schedule(item.entry.Delay, func() {
			item.enter = 0
			s.enterElement(item)
		})
	}
}

// Len returns the number of entries.
func (s *Sequencer) Len() int { return len(s.elements) }

// Element returns the state of entry i.
func (s *Sequencer) Element(i int) State {
	item := s.elements[i]
	state := State{
		Entry:      item.entry,
		Phase:      item.phase,
		Typewriter: item.job,
	}
	switch item.phase {
	case Entering:
		elapsed := s.scheduler.Now().Sub(item.enteredAt)
		state.Progress = min(max(float64(elapsed)/float64(s.duration), 0), 1)
	case Shown:
		state.Progress = 1
	}
	return state
}

// Animating reports whether any entry is mid-entrance.
func (s *Sequencer) Animating() bool {
	for _, item := range s.elements {
		if item.phase == Entering {
			return true
		}
	}
	return false
}

// Complete reports whether every entry is shown and every typewriter
// has finished.
func (s *Sequencer) Complete() bool {
	for _, item := range s.elements {
		if item.phase != Shown || (item.job != nil && !item.job.Done()) {
			return false
		}
	}
	return true
}

// Stop cancels every timer, including the typewriters'. The sequencer
// ignores triggers afterwards.
func (s *Sequencer) Stop() {
	for _, item := range s.elements {
		schedule.CancelAll(s.scheduler, &item.enter, &item.settle)
		if item.job != nil {
			item.job.Stop()
		}
	}
	s.stopped = true
}

func (s *Sequencer) enterElement(item *element) {
	item.phase = Entering
	item.enteredAt = s.scheduler.Now()
	if item.job != nil {
		item.job.Restart()
		item.job.SetGate(true)
	}
	item.settle = s.scheduler.Schedule(s.duration, func() {
		item.settle = 0
		item.phase = Shown
	})
}

func (s *Sequencer) reset() {
	for _, item := range s.elements {
		schedule.CancelAll(s.scheduler, &item.enter, &item.settle)
		item.phase = Hidden
		if item.job != nil {
			item.job.Reset()
		}
	}
}
