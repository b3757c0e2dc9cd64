// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schedule provides the injectable timer abstraction that every
// animation timeline in folio runs on.
//
// Components accept a Scheduler instead of calling time.AfterFunc.
// There is exactly one implementation, Queue, which keeps virtual time:
// time moves only when the owner calls Advance or AdvanceTo, and due
// callbacks fire synchronously inside that call. The UI loop advances
// the queue to wall-clock time on every frame; tests advance it by
// exact amounts.
//
// # Wiring Pattern
//
//	q := schedule.NewQueue(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	job := typewriter.New(q, "Hello", typewriter.Options{Speed: 80 * time.Millisecond})
//	q.Advance(400 * time.Millisecond)
//	// job.Displayed() == "Hello"
//
// Queue is not safe for concurrent use. It belongs to the goroutine that
// runs the UI event loop, which is also the only goroutine that mutates
// the state its callbacks touch.
package schedule
