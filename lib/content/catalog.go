// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

//go:embed site
var siteFiles embed.FS

// FallbackPage is shown for a page key with no page.
const FallbackPage = "<p>Content not found.</p>"

const (
	manifestFile = "projects.jsonc"
	mediaFile    = "media.yaml"
	siteFile     = "site.yaml"
	pagesDir     = "pages"
)

// Catalog is a loaded content directory. It is immutable; reloading
// produces a new Catalog.
type Catalog struct {
	projects []Project
	pages    map[string]string
	media    map[string]string
	site     Site
	digest   string
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	root, err := fs.Sub(siteFiles, "site")
	if err != nil {
		return nil, fmt.Errorf("opening embedded content: %w", err)
	}
	return Load(root)
}

// LoadDir loads a content directory from disk.
func LoadDir(directory string) (*Catalog, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", directory)
	}
	return Load(os.DirFS(directory))
}

// Load reads a content directory from fsys. projects.jsonc and
// site.yaml are required; media.yaml and pages/ may be absent.
func Load(fsys fs.FS) (*Catalog, error) {
	hasher := blake3.New()
	digestFile := func(name string, data []byte) {
		hasher.Write([]byte(name))
		hasher.Write([]byte{0})
		hasher.Write(data)
		hasher.Write([]byte{0})
	}

	manifest, err := fs.ReadFile(fsys, manifestFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifestFile, err)
	}
	digestFile(manifestFile, manifest)
	projects, err := ParseProjects(manifest)
	if err != nil {
		return nil, err
	}

	siteData, err := fs.ReadFile(fsys, siteFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", siteFile, err)
	}
	digestFile(siteFile, siteData)
	var site Site
	if err := yaml.Unmarshal(siteData, &site); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", siteFile, err)
	}

	media := make(map[string]string)
	mediaData, err := fs.ReadFile(fsys, mediaFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", mediaFile, err)
	default:
		digestFile(mediaFile, mediaData)
		if err := yaml.Unmarshal(mediaData, &media); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", mediaFile, err)
		}
	}

	pages, err := loadPages(fsys, digestFile)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		projects: projects,
		pages:    pages,
		media:    media,
		site:     site,
		digest:   hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// loadPages reads every .html file under pages/. fs.ReadDir returns
// entries sorted by name, so the digest is stable.
func loadPages(fsys fs.FS, digestFile func(string, []byte)) (map[string]string, error) {
	pages := make(map[string]string)
	entries, err := fs.ReadDir(fsys, pagesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return pages, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pagesDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".html" {
			continue
		}
		key := path.Join(pagesDir, entry.Name())
		data, err := fs.ReadFile(fsys, key)
		if err != nil {
			return nil, fmt.Errorf("reading page %s: %w", key, err)
		}
		digestFile(key, data)
		pages[key] = string(data)
	}
	return pages, nil
}

// Projects returns the manifest in gallery order. The slice is shared;
// callers must not modify it.
func (c *Catalog) Projects() []Project { return c.projects }

// Project finds a project by Key or by exact name.
func (c *Catalog) Project(key string) (Project, bool) {
	for _, project := range c.projects {
		if project.Key() == key || project.Name == key {
			return project, true
		}
	}
	return Project{}, false
}

// Page returns the page stored under key.
func (c *Catalog) Page(key string) (string, bool) {
	page, ok := c.pages[key]
	return page, ok
}

// PageOrFallback returns the page stored under key, or FallbackPage.
func (c *Catalog) PageOrFallback(key string) string {
	if page, ok := c.pages[key]; ok {
		return page
	}
	return FallbackPage
}

// PageKeys returns the keys of every loaded page, sorted.
func (c *Catalog) PageKeys() []string {
	keys := make([]string, 0, len(c.pages))
	for key := range c.pages {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// ResolveImage maps a media identifier to its file or URL. Unmapped
// identifiers are returned unchanged.
func (c *Catalog) ResolveImage(identifier string) string {
	if resolved, ok := c.media[identifier]; ok && resolved != "" {
		return resolved
	}
	return identifier
}

// Site returns the site copy.
func (c *Catalog) Site() Site { return c.site }

// Digest is a BLAKE3 fingerprint of every file the catalog was built
// from. Two catalogs with the same digest have the same content.
func (c *Catalog) Digest() string { return c.digest }
