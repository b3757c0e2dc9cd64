// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// folio is a terminal portfolio: a home page whose sections type
// themselves in as they scroll into view, a filterable project gallery
// with a detail modal, and an about page with a flip card.
//
// Content comes from the site embedded in the binary, or from a
// content directory (--content) laid out the same way:
//
//	projects.jsonc   gallery manifest
//	site.yaml        home, projects and about copy
//	media.yaml       media identifier to file or URL
//	pages/*.html     project detail pages
//
// With --watch the directory is reloaded whenever a file in it changes,
// without restarting the viewer.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/bureau-foundation/folio/cmd/folio/cli"
)

func main() {
	os.Exit(cli.Report(os.Stderr, run(os.Args[1:])))
}

func run(args []string) error {
	return newApp(os.Stdout, os.Stderr).root().Execute(args)
}
