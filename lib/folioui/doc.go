// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package folioui is the full-screen terminal UI for the portfolio.
//
// [Model] is a bubbletea model that owns a single virtual-time
// [schedule.Queue]. Every timeline in the UI (typewriters, section
// entrances, the tab transition, the profile card flip) runs on that
// queue. At the start of each Update the queue is advanced to the
// wall clock, and after each Update the model asks bubbletea for one
// frame message: at the frame interval while something is mid-entrance,
// otherwise at the earliest pending deadline. Nothing else ticks.
//
// The tab bar, the Home CTA and the number keys all change tabs through
// the navigator's dispatch function. The navigator mounts exactly one
// page at a time; unmounting a page stops all of its timers and
// triggers.
//
// Pages:
//
//   - home: hero with typed greeting and name, the "I work on" heading,
//     scroll sections revealed as they enter the viewport, and the
//     projects call to action
//   - projects: gallery cards, fuzzy filter, and the project modal with
//     the rendered project page
//   - about: the flip-able profile card and the bio
//
// Content reloads arrive as [CatalogMsg] and remount the current page.
package folioui
