// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"container/heap"
	"time"
)

// Queue is a virtual-time Scheduler. Time stands still until Advance or
// AdvanceTo is called. Due callbacks are invoked synchronously in
// deadline order; callbacks sharing a deadline run in the order they
// were scheduled.
//
// Callbacks may call Schedule and Cancel on the same Queue. A callback
// scheduled during an Advance whose deadline falls within the advanced
// window fires before that Advance returns.
type Queue struct {
	current time.Time
	pending entryHeap
	byID    map[Handle]*entry
	nextID  Handle
}

type entry struct {
	id       Handle
	deadline time.Time
	callback func()

	// index is maintained by entryHeap for heap.Remove.
	index int
}

// NewQueue returns a Queue whose virtual time starts at start.
func NewQueue(start time.Time) *Queue {
	return &Queue{
		current: start,
		byID:    make(map[Handle]*entry),
	}
}

// Now returns the current virtual time.
func (q *Queue) Now() time.Time { return q.current }

// Schedule implements Scheduler.
func (q *Queue) Schedule(delay time.Duration, callback func()) Handle {
	if delay <= 0 {
		callback()
		return 0
	}
	q.nextID++
	item := &entry{
		id:       q.nextID,
		deadline: q.current.Add(delay),
		callback: callback,
	}
	heap.Push(&q.pending, item)
	q.byID[item.id] = item
	return item.id
}

// Cancel implements Scheduler.
func (q *Queue) Cancel(handle Handle) bool {
	item, ok := q.byID[handle]
	if !ok {
		return false
	}
	delete(q.byID, handle)
	heap.Remove(&q.pending, item.index)
	return true
}

// Advance moves virtual time forward by d and fires every callback
// whose deadline is at or before the new time. Negative durations are
// ignored.
func (q *Queue) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	q.AdvanceTo(q.current.Add(d))
}

// AdvanceTo moves virtual time forward to target, firing due callbacks
// in deadline order. Before each callback runs, Now reports that
// callback's deadline, so callbacks that schedule follow-ups measure
// from the moment they were due rather than from target. A target in
// the past leaves the clock unchanged.
func (q *Queue) AdvanceTo(target time.Time) {
	if target.Before(q.current) {
		return
	}
	for q.pending.Len() > 0 {
		next := q.pending[0]
		if next.deadline.After(target) {
			break
		}
		heap.Pop(&q.pending)
		delete(q.byID, next.id)
		if next.deadline.After(q.current) {
			q.current = next.deadline
		}
		next.callback()
	}
	q.current = target
}

// Next returns the earliest pending deadline. The boolean is false when
// nothing is pending.
func (q *Queue) Next() (time.Time, bool) {
	if q.pending.Len() == 0 {
		return time.Time{}, false
	}
	return q.pending[0].deadline, true
}

// Pending returns the number of callbacks waiting to fire.
func (q *Queue) Pending() int { return q.pending.Len() }

// entryHeap orders entries by deadline, then by handle (which increases
// monotonically with scheduling order).
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].id < h[j].id
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	item := x.(*entry)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}
