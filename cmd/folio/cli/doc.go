// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the folio binary:
// a tree of [Command] values dispatched by name, pflag-based flag
// parsing with typo suggestions, categorized errors carrying exit codes
// and hints, and the loggers used outside the terminal UI.
package cli
