// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for non-interactive
// commands writing to output (normally stderr). When output is a
// terminal it uses slog.TextHandler for human-readable output;
// otherwise it uses slog.JSONHandler.
//
// The interactive viewer never logs to stderr (it would corrupt the
// alternate screen) and builds its own handler chain instead.
func NewCommandLogger(output io.Writer, level slog.Leveler) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if file, ok := output.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return slog.New(slog.NewTextHandler(output, options))
	}
	return slog.New(slog.NewJSONHandler(output, options))
}

// IsTerminal reports whether stdout is a terminal. Commands that print
// styled output fall back to plain text when it is not.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
