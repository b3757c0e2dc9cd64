// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the shared terminal building blocks for folio's
// views: the color theme, entrance easing, overlay splicing for modals,
// scrollbars, fuzzy matching, and a slog handler that routes log
// records into the running bubbletea program.
//
// Views own their layout and content; this package only supplies the
// mechanics they share, so that every tab fades, slides and highlights
// the same way.
package tui
