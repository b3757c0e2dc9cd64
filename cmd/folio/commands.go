// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/folio/cmd/folio/cli"
	"github.com/bureau-foundation/folio/lib/content"
	"github.com/bureau-foundation/folio/lib/pagerender"
	"github.com/bureau-foundation/folio/lib/tui"
)

// projectEntry is the JSON form of a project in "folio list --json".
type projectEntry struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Year         int      `json:"year"`
	Properties   string   `json:"properties"`
	Tags         []string `json:"tags"`
	Technologies []string `json:"technologies"`
	Image        string   `json:"image"`
}

func (a *app) listCommand() *cli.Command {
	var params struct {
		contentParams
		cli.JSONOutput
	}
	return &cli.Command{
		Name:    "list",
		Summary: "List the projects in the gallery",
		Usage:   "folio list [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			params.contentParams.AddFlags(flagSet)
			params.JSONOutput.AddFlag(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			cfg, err := params.resolve()
			if err != nil {
				return err
			}
			logger, err := a.logger(cfg)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg.Content.Dir, logger)
			if err != nil {
				return err
			}

			projects := catalog.Projects()
			entries := make([]projectEntry, len(projects))
			for index, project := range projects {
				entries[index] = projectEntry{
					Key:          project.Key(),
					Name:         project.Name,
					Year:         project.Year,
					Properties:   project.Properties,
					Tags:         project.Tags,
					Technologies: project.Technologies,
					Image:        catalog.ResolveImage(project.Image),
				}
			}
			if done, err := params.EmitJSON(a.stdout, entries); done {
				return err
			}

			writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(writer, "KEY\tNAME\tYEAR\tTAGS\n")
			for _, entry := range entries {
				fmt.Fprintf(writer, "%s\t%s\t%d\t%s\n", entry.Key, entry.Name, entry.Year, strings.Join(entry.Tags, ", "))
			}
			return writer.Flush()
		},
	}
}

func (a *app) showCommand() *cli.Command {
	var params struct {
		contentParams
		width int
		plain bool
	}
	return &cli.Command{
		Name:    "show",
		Summary: "Print a project's detail page",
		Usage:   "folio show <project> [flags]",
		Description: `Print a project's detail page, rendered for the terminal.

The project is named by its key (see "folio list") or its name.
Output is styled when stdout is a terminal and plain text otherwise.`,
		Examples: []cli.Example{
			{Description: "Read the AutoProof page", Command: "folio show autoproof"},
			{Description: "Plain text for a pager", Command: "folio show copd --plain | less"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			params.contentParams.AddFlags(flagSet)
			flagSet.IntVar(&params.width, "width", 0, "wrap width (default: terminal width, or 80)")
			flagSet.BoolVar(&params.plain, "plain", false, "print plain text without styling")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("show takes exactly one project, got %d arguments", len(args)).
					WithHint("Run 'folio list' to see project keys.")
			}
			cfg, err := params.resolve()
			if err != nil {
				return err
			}
			logger, err := a.logger(cfg)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg.Content.Dir, logger)
			if err != nil {
				return err
			}
			project, ok := findProject(catalog, args[0])
			if !ok {
				return cli.NotFound("no project %q", args[0]).
					WithHint("Run 'folio list' to see project keys.")
			}

			width := params.width
			if width <= 0 {
				width = terminalWidth()
			}
			renderer := pagerender.New(tui.DefaultTheme, catalog.ResolveImage)
			if _, ok := catalog.Page(project.Content); !ok {
				logger.Warn("project page missing, showing fallback", "project", project.Name, "page", project.Content)
			}
			page := catalog.PageOrFallback(project.Content)
			if params.plain || !cli.IsTerminal() {
				fmt.Fprintf(a.stdout, "%s\n\n%s\n", project.Name, renderer.Plain(page, width))
				return nil
			}
			fmt.Fprintf(a.stdout, "%s\n", renderer.Render(page, width))
			return nil
		},
	}
}

func (a *app) checkCommand() *cli.Command {
	var params contentParams
	return &cli.Command{
		Name:    "check",
		Summary: "Validate a content directory",
		Usage:   "folio check [flags]",
		Description: `Load a content directory and report problems: a manifest or copy
file that does not parse, projects whose page is missing, cover images
with no media mapping, and pages no project links to.

Exits 1 when there are problems.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("check", pflag.ContinueOnError)
			params.AddFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			cfg, err := params.resolve()
			if err != nil {
				return err
			}
			logger, err := a.logger(cfg)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg.Content.Dir, logger)
			if err != nil {
				return err
			}

			problems := checkCatalog(catalog)
			logger.Debug("checked content", "problems", len(problems))
			for _, problem := range problems {
				fmt.Fprintf(a.stdout, "%s\n", problem)
			}
			if len(problems) > 0 {
				fmt.Fprintf(a.stdout, "\n%d problem(s)\n", len(problems))
				return &cli.ExitError{Code: 1}
			}
			fmt.Fprintf(a.stdout, "ok: %d projects, %d pages (digest %s)\n",
				len(catalog.Projects()), len(catalog.PageKeys()), catalog.Digest())
			return nil
		},
	}
}

// checkCatalog lists the problems in a catalog that loaded: dangling
// page and image references and orphaned pages.
func checkCatalog(catalog *content.Catalog) []string {
	var problems []string
	linked := make(map[string]bool)
	for _, project := range catalog.Projects() {
		linked[project.Content] = true
		if _, ok := catalog.Page(project.Content); !ok {
			problems = append(problems, fmt.Sprintf("%s: page %s not found", project.Name, project.Content))
		}
		if catalog.ResolveImage(project.Image) == project.Image && !looksLikePath(project.Image) {
			problems = append(problems, fmt.Sprintf("%s: image %q has no media mapping", project.Name, project.Image))
		}
	}
	for _, key := range catalog.PageKeys() {
		if !linked[key] {
			problems = append(problems, fmt.Sprintf("%s: no project links to this page", key))
		}
	}
	return problems
}

// looksLikePath reports whether an unmapped media identifier is usable
// as-is: a file path or URL rather than a symbolic name.
func looksLikePath(identifier string) bool {
	return strings.ContainsAny(identifier, "/.")
}

// findProject matches a key exactly, then a name case-insensitively.
func findProject(catalog *content.Catalog, query string) (content.Project, bool) {
	if project, ok := catalog.Project(query); ok {
		return project, true
	}
	for _, project := range catalog.Projects() {
		if strings.EqualFold(project.Name, query) {
			return project, true
		}
	}
	return content.Project{}, false
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}
