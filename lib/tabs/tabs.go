// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tabs owns the top-level tab state and the exit-then-enter
// transition between tab views.
//
// Exactly one view is mounted at any instant. Selecting a different tab
// plays the mounted view's exit, unmounts it, mounts the newly selected
// view and plays its entrance. Views never hold the tab state
// themselves: they read a State snapshot and change tabs through the
// function returned by Dispatch.
package tabs

import (
	"strings"
	"time"

	"github.com/bureau-foundation/folio/lib/schedule"
)

// Tab identifies a top-level view.
type Tab int

const (
	Home Tab = iota
	Projects
	About
)

// All lists the tabs in navigation order.
var All = []Tab{Home, Projects, About}

var (
	tabIDs    = [...]string{"home", "projects", "about"}
	tabLabels = [...]string{"Home", "Projects", "About Me"}
)

// Valid reports whether t is one of the defined tabs.
func (t Tab) Valid() bool { return t >= Home && t <= About }

// String returns the tab identifier ("home", "projects", "about").
func (t Tab) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return tabIDs[t]
}

// Label returns the text shown in the navigation bar.
func (t Tab) Label() string {
	if !t.Valid() {
		return ""
	}
	return tabLabels[t]
}

// Parse maps an identifier or label to a Tab, ignoring case.
func Parse(name string) (Tab, bool) {
	for _, tab := range All {
		if strings.EqualFold(name, tab.String()) || strings.EqualFold(name, tab.Label()) {
			return tab, true
		}
	}
	return Home, false
}

// Phase is the navigator's transition phase.
type Phase int

const (
	Settled Phase = iota
	Exiting
	Entering
)

func (p Phase) String() string {
	switch p {
	case Settled:
		return "settled"
	case Exiting:
		return "exiting"
	case Entering:
		return "entering"
	default:
		return "invalid"
	}
}

// DefaultTransition is the exit and entrance length used when the
// corresponding option is not positive.
const DefaultTransition = 300 * time.Millisecond

// Hooks are called synchronously when views come and go.
type Hooks struct {
	Mount   func(Tab)
	Unmount func(Tab)
}

// Options configures a Navigator.
type Options struct {
	Initial Tab
	Exit    time.Duration
	Enter   time.Duration
}

// State is the read-only snapshot handed to views.
type State struct {
	// Active is the most recently selected tab.
	Active Tab

	// Mounted is the tab whose view currently exists. It differs from
	// Active only while the previous view is exiting.
	Mounted Tab

	Phase Phase

	// Progress runs from 0 to 1 across the current phase and is 1
	// when Settled.
	Progress float64
}

// Navigator is the single owner of the tab state.
type Navigator struct {
	scheduler  schedule.Scheduler
	hooks      Hooks
	options    Options
	active     Tab
	mounted    Tab
	phase      Phase
	phaseStart time.Time
	timer      schedule.Handle
	stopped    bool
}

// New mounts the initial tab and plays its entrance.
func New(scheduler schedule.Scheduler, hooks Hooks, options Options) *Navigator {
	if !options.Initial.Valid() {
		options.Initial = Home
	}
	if options.Exit <= 0 {
		options.Exit = DefaultTransition
	}
	if options.Enter <= 0 {
		options.Enter = DefaultTransition
	}
	navigator := &Navigator{
		scheduler: scheduler,
		hooks:     hooks,
		options:   options,
		active:    options.Initial,
		mounted:   options.Initial,
	}
	navigator.mount()
	return navigator
}

// Select makes tab the active tab. Invalid values are ignored.
// Selecting the mounted tab while it is exiting aborts the exit.
func (n *Navigator) Select(tab Tab) {
	if n.stopped || !tab.Valid() {
		return
	}
	n.active = tab
	switch n.phase {
	case Exiting:
		if tab == n.mounted {
			n.beginEnter()
		}
	default:
		if tab != n.mounted {
			n.beginExit()
		}
	}
}

// Dispatch returns the function views use to change tabs.
func (n *Navigator) Dispatch() func(Tab) { return n.Select }

// Active returns the most recently selected tab.
func (n *Navigator) Active() Tab { return n.active }

// Mounted returns the tab whose view currently exists.
func (n *Navigator) Mounted() Tab { return n.mounted }

// Transitioning reports whether an exit or entrance is playing.
func (n *Navigator) Transitioning() bool { return n.phase != Settled }

// State returns a snapshot for rendering.
func (n *Navigator) State() State {
	return State{
		Active:   n.active,
		Mounted:  n.mounted,
		Phase:    n.phase,
		Progress: n.progress(),
	}
}

// Stop cancels any transition and unmounts the current view.
func (n *Navigator) Stop() {
	if n.stopped {
		return
	}
	schedule.CancelAll(n.scheduler, &n.timer)
	n.stopped = true
	if n.hooks.Unmount != nil {
		n.hooks.Unmount(n.mounted)
	}
}

func (n *Navigator) progress() float64 {
	var length time.Duration
	switch n.phase {
	case Exiting:
		length = n.options.Exit
	case Entering:
		length = n.options.Enter
	default:
		return 1
	}
	elapsed := n.scheduler.Now().Sub(n.phaseStart)
	return min(max(float64(elapsed)/float64(length), 0), 1)
}

func (n *Navigator) mount() {
	if n.hooks.Mount != nil {
		n.hooks.Mount(n.mounted)
	}
	n.beginEnter()
}

func (n *Navigator) beginEnter() {
	schedule.CancelAll(n.scheduler, &n.timer)
	n.phase = Entering
	n.phaseStart = n.scheduler.Now()
	n.timer = n.scheduler.Schedule(n.options.Enter, func() {
		n.timer = 0
		n.phase = Settled
	})
}

func (n *Navigator) beginExit() {
	schedule.CancelAll(n.scheduler, &n.timer)
	n.phase = Exiting
	n.phaseStart = n.scheduler.Now()
	n.timer = n.scheduler.Schedule(n.options.Exit, func() {
		n.timer = 0
		if n.hooks.Unmount != nil {
			n.hooks.Unmount(n.mounted)
		}
		n.mounted = n.active
		n.mount()
	})
}
