// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package reveal sequences the staggered entrance of a group of
// elements once a trigger fires.
//
// A Sequencer owns an ordered list of entries. When triggered, entry i
// starts entering at its Delay, spends Options.Duration in the Entering
// phase, and is Shown afterwards. Entries with a typing Speed own a
// typewriter that starts revealing text when the entry enters. When
// the trigger drops (repeatable triggers only), everything goes back to
// Hidden and the typewriters park, so the next trigger replays the
// whole sequence from the beginning.
//
// Section and Stagger build the entry lists used by the site: scroll
// sections, gallery cards, profile tags and navigation labels.
package reveal
