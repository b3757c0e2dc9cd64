// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/folio/cmd/folio/cli"
	"github.com/bureau-foundation/folio/lib/content"
	"github.com/bureau-foundation/folio/lib/folioui"
	"github.com/bureau-foundation/folio/lib/tabs"
	"github.com/bureau-foundation/folio/lib/tui"
)

type viewerParams struct {
	contentParams
	watch     bool
	tab       string
	speed     float64
	noMouse   bool
	logOutput string
	version   bool
}

func (p *viewerParams) AddFlags(flagSet *pflag.FlagSet) {
	p.contentParams.AddFlags(flagSet)
	flagSet.BoolVar(&p.watch, "watch", false, "reload the content directory when it changes")
	flagSet.StringVar(&p.tab, "tab", "home", "tab to open: home, projects or about")
	flagSet.Float64Var(&p.speed, "speed", 0, "animation speed multiplier (2 is twice as fast)")
	flagSet.BoolVar(&p.noMouse, "no-mouse", false, "disable mouse input")
	flagSet.StringVar(&p.logOutput, "log-output", "", "write JSON log records to this file (in addition to the status line)")
	flagSet.BoolVar(&p.version, "version", false, "print version information and exit")
}

// runViewer runs the interactive viewer.
//
// Logging is routed through a tui.LogHandler that shows records in the
// status line instead of writing to stderr (which would corrupt the
// alternate screen). An optional file logger captures every record as
// JSON for later inspection.
func (a *app) runViewer(params *viewerParams) error {
	cfg, err := params.resolve()
	if err != nil {
		return err
	}
	if params.watch {
		cfg.Content.Watch = true
	}
	if params.noMouse {
		cfg.Display.Mouse = false
	}
	if params.logOutput != "" {
		cfg.Log.File = params.logOutput
	}
	if params.speed < 0 {
		return cli.Validation("--speed must be positive, got %v", params.speed)
	}
	if params.speed > 0 {
		cfg.Animation.Scale = 1 / params.speed
	}
	if err := cfg.Validate(); err != nil {
		return cli.Validation("%w", err)
	}
	initial, ok := tabs.Parse(params.tab)
	if !ok {
		return cli.Validation("unknown tab %q", params.tab).
			WithHint("Use one of: home, projects, about.")
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return cli.Validation("%w", err)
	}

	tuiHandler := tui.NewLogHandler(max(level, slog.LevelInfo))
	var logger *slog.Logger
	if cfg.Log.File != "" {
		fileHandler, fileCloser, fileErr := openFileLogHandler(cfg.Log.File, level)
		if fileErr != nil {
			return cli.Validation("cannot open log file %s: %w", cfg.Log.File, fileErr)
		}
		defer fileCloser()
		logger = slog.New(fanoutHandler{tuiHandler, fileHandler})
	} else {
		logger = slog.New(tuiHandler)
	}

	catalog, err := loadCatalog(cfg.Content.Dir, logger)
	if err != nil {
		return err
	}

	model := folioui.New(catalog, folioui.Options{
		Scale:   cfg.Animation.Scale,
		Initial: initial,
		Logger:  logger,
	})

	var options []tea.ProgramOption
	if cfg.Display.AltScreen {
		options = append(options, tea.WithAltScreen())
	}
	if cfg.Display.Mouse {
		options = append(options, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(model, options...)
	tuiHandler.SetProgram(program)

	if cfg.Content.Watch && cfg.Content.Dir != "" {
		stop, err := content.Watch(cfg.Content.Dir, catalog, func(catalog *content.Catalog, err error) {
			program.Send(folioui.CatalogMsg{Catalog: catalog, Err: err})
		})
		if err != nil {
			return cli.Internal("watching %s: %w", cfg.Content.Dir, err)
		}
		defer stop()
	}

	_, err = program.Run()
	return err
}

// openFileLogHandler creates a slog.JSONHandler that writes to the
// given file path. Returns the handler, a cleanup function to close
// the file, and any error. The file is created or truncated.
func openFileLogHandler(path string, level slog.Level) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
