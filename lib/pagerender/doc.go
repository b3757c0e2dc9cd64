// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pagerender turns a project page (an HTML fragment) into
// styled, width-wrapped terminal text.
//
// The pipeline has four stages:
//
//   - sanitize with bluemonday, keeping images and embedded players
//   - rewrite media with goquery: image sources go through the media
//     resolver, and video and iframe players become labelled links
//   - convert to markdown with html-to-markdown
//   - walk the goldmark AST and emit lipgloss-styled lines
//
// Rendering never fails. When a stage errors, the page degrades to its
// plain text content.
package pagerender
