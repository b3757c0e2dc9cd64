// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pagerender

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"

	"github.com/bureau-foundation/folio/lib/tui"
)

// Resolver maps a media identifier to a file or URL.
type Resolver func(identifier string) string

// Renderer renders project pages. It is safe for concurrent use once
// constructed.
type Renderer struct {
	theme     tui.Theme
	resolve   Resolver
	policy    *bluemonday.Policy
	converter *converter.Converter
}

// New creates a Renderer. A nil resolver leaves media identifiers
// unchanged.
func New(theme tui.Theme, resolve Resolver) *Renderer {
	if resolve == nil {
		resolve = func(identifier string) string { return identifier }
	}
	return &Renderer{
		theme:   theme,
		resolve: resolve,
		policy:  pagePolicy(),
		converter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Markdown converts page to markdown after sanitizing it and rewriting
// its media.
func (r *Renderer) Markdown(page string) (string, error) {
	prepared, err := r.prepare(page)
	if err != nil {
		return "", err
	}
	markdown, err := r.converter.ConvertString(prepared)
	if err != nil {
		return "", fmt.Errorf("converting page to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// Render returns page as styled terminal text wrapped to width.
func (r *Renderer) Render(page string, width int) string {
	markdown, err := r.Markdown(page)
	if err != nil {
		return wrapPlain(plainText(page), width)
	}
	return renderTerminal(markdown, r.theme, width)
}

// Plain returns the unstyled text content of page wrapped to width,
// sanitized and with its media rewritten as for Render.
func (r *Renderer) Plain(page string, width int) string {
	prepared, err := r.prepare(page)
	if err != nil {
		prepared = page
	}
	return wrapPlain(plainText(prepared), width)
}

func wrapPlain(text string, width int) string {
	return ansi.Wrap(text, max(width, 10), " ,.;-")
}
