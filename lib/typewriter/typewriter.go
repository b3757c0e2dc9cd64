// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package typewriter reveals a string one character at a time on a
// schedule.Scheduler.
//
// A Job starts typing once two conditions hold: its delay has elapsed
// since it was armed, and its gate is open. From then on it reveals one
// rune per Speed interval until the whole text is shown, at which point
// it holds no timers. While text remains hidden a cursor blinks at
// BlinkInterval, independent of Speed.
package typewriter

import (
	"time"

	"github.com/bureau-foundation/folio/lib/schedule"
)

const (
	// DefaultSpeed is the reveal interval used when Options.Speed is
	// not positive.
	DefaultSpeed = 50 * time.Millisecond

	// DefaultBlinkInterval is the cursor toggle interval used when
	// Options.BlinkInterval is not positive.
	DefaultBlinkInterval = 800 * time.Millisecond

	// Cursor is the glyph drawn after the revealed text while typing.
	Cursor = "|"
)

// Options configures a Job.
type Options struct {
	// Speed is the interval between revealed characters.
	Speed time.Duration

	// Delay is the wait between arming and the first tick. Negative
	// values are treated as zero.
	Delay time.Duration

	// Gated makes the gate start closed. Typing cannot begin until
	// SetGate(true).
	Gated bool

	// Parked makes the job start parked (see Reset). It does nothing
	// until Restart.
	Parked bool

	// BlinkInterval is the cursor toggle interval.
	BlinkInterval time.Duration
}

// Job is one typewriter effect. All methods must be called from the
// goroutine that owns the scheduler.
type Job struct {
	scheduler schedule.Scheduler
	runes     []rune
	options   Options

	revealed     int
	delayElapsed bool
	gateOpen     bool
	started      bool
	cursorOn     bool
	parked       bool
	stopped      bool

	delayTimer schedule.Handle
	tickTimer  schedule.Handle
	blinkTimer schedule.Handle
}

// New creates a Job for text and arms it: the delay starts counting
// immediately unless options.Parked is set.
func New(scheduler schedule.Scheduler, text string, options Options) *Job {
	if options.Speed <= 0 {
		options.Speed = DefaultSpeed
	}
	if options.Delay < 0 {
		options.Delay = 0
	}
	if options.BlinkInterval <= 0 {
		options.BlinkInterval = DefaultBlinkInterval
	}
	job := &Job{
		scheduler: scheduler,
		runes:     []rune(text),
		options:   options,
		gateOpen:  !options.Gated,
		parked:    options.Parked,
	}
	if !job.parked {
		job.arm()
	}
	return job
}

// SetGate opens or closes the start gate. Opening the gate after the
// delay has already elapsed starts typing immediately. Closing the gate
// only prevents a start; a job that is already typing keeps going.
func (j *Job) SetGate(open bool) {
	j.gateOpen = open
	if open {
		j.maybeStart()
	}
}

// SetText replaces the text. If it differs from the current text the
// job resets to zero revealed characters and waits out its delay again.
func (j *Job) SetText(text string) {
	if string(j.runes) == text {
		return
	}
	j.runes = []rune(text)
	if j.parked || j.stopped {
		j.revealed = 0
		return
	}
	j.arm()
}

// Restart clears the revealed text and arms the job again, as if it
// had just been mounted. The gate keeps its current state.
func (j *Job) Restart() {
	if j.stopped {
		return
	}
	j.parked = false
	j.arm()
}

// Reset cancels every timer, clears the revealed text and parks the
// job. A parked job stays at zero characters until Restart.
func (j *Job) Reset() {
	j.cancelTimers()
	j.revealed = 0
	j.started = false
	j.delayElapsed = false
	j.cursorOn = false
	j.parked = true
}

// Stop cancels every pending timer permanently. Called when the view
// that owns the job is unmounted; the job ignores Restart afterwards.
func (j *Job) Stop() {
	j.cancelTimers()
	j.stopped = true
}

// Text returns the full text.
func (j *Job) Text() string { return string(j.runes) }

// Displayed returns the revealed prefix of the text.
func (j *Job) Displayed() string { return string(j.runes[:j.revealed]) }

// Revealed returns the number of revealed characters.
func (j *Job) Revealed() int { return j.revealed }

// Len returns the length of the text in characters.
func (j *Job) Len() int { return len(j.runes) }

// Started reports whether typing has begun.
func (j *Job) Started() bool { return j.started }

// Done reports whether every character has been revealed.
func (j *Job) Done() bool { return j.revealed == len(j.runes) }

// Typing reports whether the job still has timers to run: it is armed,
// not stopped, and not yet complete.
func (j *Job) Typing() bool { return !j.Done() && !j.parked && !j.stopped }

// Parked reports whether the job is waiting for Restart.
func (j *Job) Parked() bool { return j.parked }

// CursorVisible reports whether the blinking cursor is in its visible
// phase. The cursor is never visible once the text is complete.
func (j *Job) CursorVisible() bool { return j.Typing() && j.cursorOn }

func (j *Job) arm() {
	j.cancelTimers()
	j.revealed = 0
	j.started = false
	j.delayElapsed = false
	if len(j.runes) == 0 {
		j.cursorOn = false
		return
	}
	j.cursorOn = true
	j.blinkTimer = j.scheduler.Schedule(j.options.BlinkInterval, j.blink)
	j.delayTimer = j.scheduler.Schedule(j.options.Delay, func() {
		j.delayTimer = 0
		j.delayElapsed = true
		j.maybeStart()
	})
}

func (j *Job) maybeStart() {
	if j.started || !j.delayElapsed || !j.gateOpen || j.parked || j.stopped {
		return
	}
	j.started = true
	j.tickTimer = j.scheduler.Schedule(j.options.Speed, j.tick)
}

func (j *Job) tick() {
	j.tickTimer = 0
	j.revealed++
	if j.revealed >= len(j.runes) {
		j.revealed = len(j.runes)
		j.cursorOn = false
		schedule.CancelAll(j.scheduler, &j.blinkTimer)
		return
	}
	j.tickTimer = j.scheduler.Schedule(j.options.Speed, j.tick)
}

func (j *Job) blink() {
	j.blinkTimer = 0
	if !j.Typing() {
		return
	}
	j.cursorOn = !j.cursorOn
	j.blinkTimer = j.scheduler.Schedule(j.options.BlinkInterval, j.blink)
}

func (j *Job) cancelTimers() {
	schedule.CancelAll(j.scheduler, &j.delayTimer, &j.tickTimer, &j.blinkTimer)
}
