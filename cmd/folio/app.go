// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/folio/cmd/folio/cli"
	"github.com/bureau-foundation/folio/lib/config"
	"github.com/bureau-foundation/folio/lib/content"
	"github.com/bureau-foundation/folio/lib/version"
)

// app carries the output streams so commands can be tested without
// touching the process's stdout.
type app struct {
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

func (a *app) root() *cli.Command {
	var params viewerParams
	return &cli.Command{
		Name:    "folio",
		Summary: "Terminal portfolio viewer",
		Description: `folio is an animated portfolio for the terminal.

Without a command it opens the interactive viewer. The Home tab types
its introduction and reveals each section as it scrolls into view, the
Projects tab is a filterable card gallery, and the About tab shows a
profile card that flips to contact details.`,
		Usage:  "folio [command] [flags]",
		Output: a.stderr,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("folio", pflag.ContinueOnError)
			params.AddFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if params.version {
				version.Print(a.stdout, "folio")
				return nil
			}
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return a.runViewer(&params)
		},
		Examples: []cli.Example{
			{Description: "Open the built-in portfolio", Command: "folio"},
			{Description: "Preview a content directory while editing it", Command: "folio --content ./site --watch"},
			{Description: "Start on the gallery with faster animations", Command: "folio --tab projects --speed 2"},
		},
		Subcommands: []*cli.Command{
			a.listCommand(),
			a.showCommand(),
			a.checkCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func([]string) error {
					version.Print(a.stdout, "folio")
					return nil
				},
			},
		},
	}
}

// contentParams selects the catalog for the non-interactive commands.
type contentParams struct {
	configPath string
	contentDir string
}

func (p *contentParams) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&p.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&p.contentDir, "content", "", "content directory (default: the embedded site)")
}

// resolve loads the configuration and applies the flag overrides.
func (p *contentParams) resolve() (*config.Config, error) {
	cfg, err := config.Resolve(p.configPath)
	if err != nil {
		return nil, cli.Validation("%w", err).
			WithHint("Fix the config file or unset " + config.EnvironmentVariable + ".")
	}
	if p.contentDir != "" {
		cfg.Content.Dir = p.contentDir
	}
	return cfg, nil
}

// logger builds the stderr logger for a non-interactive command at the
// configured level.
func (a *app) logger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, cli.Validation("%w", err).
			WithHint("Set log.level in the config file to debug, info, warn or error.")
	}
	return cli.NewCommandLogger(a.stderr, level), nil
}

// loadCatalog returns the embedded catalog for an empty directory.
func loadCatalog(directory string, logger *slog.Logger) (*content.Catalog, error) {
	if directory == "" {
		catalog, err := content.Default()
		if err != nil {
			return nil, cli.Internal("loading embedded content: %w", err)
		}
		logger.Debug("loaded content", "source", "embedded", "projects", len(catalog.Projects()), "digest", catalog.Digest())
		return catalog, nil
	}
	catalog, err := content.LoadDir(directory)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("content directory %s: %w", directory, err).
			WithHint("Pass --content with a directory containing projects.jsonc, or omit it to use the built-in site.")
	}
	if err != nil {
		return nil, cli.Validation("loading content from %s: %w", directory, err).
			WithHint("Run 'folio check --content " + directory + "' for details.")
	}
	logger.Debug("loaded content", "source", directory, "projects", len(catalog.Projects()), "digest", catalog.Digest())
	return catalog, nil
}
