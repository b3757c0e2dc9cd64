// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package content loads the static site content: the project manifest,
// the per-project pages, the media identifier map and the site copy.
//
// A content directory has this layout:
//
//	projects.jsonc   ordered project manifest (JSON with comments)
//	pages/*.html     rich-text project pages, keyed "pages/<name>.html"
//	media.yaml       media identifier -> file or URL (optional)
//	site.yaml        home, gallery and profile copy
//
// The default content is embedded at compile time via go:embed.
// LoadDir reads the same layout from disk, and Watch reloads it when
// the files change.
//
// Lookups never fail at display time: a page key with no page yields
// FallbackPage, and a media identifier with no mapping resolves to
// itself.
package content
