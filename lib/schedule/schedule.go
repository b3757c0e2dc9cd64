// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import "time"

// Handle identifies a pending callback. The zero Handle never refers to
// a pending callback: it is returned when Schedule ran the callback
// synchronously.
type Handle uint64

// Scheduler runs callbacks after a delay. Implementations must run
// callbacks on the goroutine that owns the scheduler, never
// concurrently with each other.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time

	// Schedule arranges for callback to run once delay has elapsed.
	// If delay <= 0, callback runs synchronously before Schedule
	// returns and the zero Handle is returned.
	Schedule(delay time.Duration, callback func()) Handle

	// Cancel removes a pending callback. Returns true if the callback
	// was pending and will now never run, false if it already ran, was
	// already cancelled, or the handle is unknown.
	Cancel(handle Handle) bool
}

// CancelAll cancels every non-zero handle and resets it to zero.
func CancelAll(scheduler Scheduler, handles ...*Handle) {
	for _, handle := range handles {
		if *handle != 0 {
			scheduler.Cancel(*handle)
			*handle = 0
		}
	}
}

// Scaled returns a Scheduler that multiplies every delay by factor
// before handing it to scheduler. Factors at or below zero are treated
// as 1.
func Scaled(scheduler Scheduler, factor float64) Scheduler {
	if factor <= 0 || factor == 1 {
		return scheduler
	}
	return scaled{inner: scheduler, factor: factor}
}

type scaled struct {
	inner  Scheduler
	factor float64
}

func (s scaled) Now() time.Time { return s.inner.Now() }

func (s scaled) Schedule(delay time.Duration, callback func()) Handle {
	return s.inner.Schedule(time.Duration(float64(delay)*s.factor), callback)
}

func (s scaled) Cancel(handle Handle) bool { return s.inner.Cancel(handle) }
