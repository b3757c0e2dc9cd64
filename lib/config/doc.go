// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for folio.
//
// Configuration comes from a single file named by the --config flag or
// the FOLIO_CONFIG environment variable (see [Resolve]). Without
// either, [Default] applies: the embedded content, no watching, normal
// animation speed, mouse support on.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${FOLIO_CONTENT} and ${VAR:-default} patterns are expanded.
// No other environment variables override config values.
//
// This package depends on no other folio packages.
package config
