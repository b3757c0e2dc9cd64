// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type reload struct {
	catalog *Catalog
	err     error
}

func writeContentDir(t *testing.T) string {
	t.Helper()
	directory := t.TempDir()
	for name, file := range testFS() {
		path := filepath.Join(directory, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, file.Data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return directory
}

func startWatch(t *testing.T, directory string) (*Catalog, <-chan reload) {
	t.Helper()
	catalog, err := LoadDir(directory)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	reloads := make(chan reload, 8)
	stop, err := Watch(directory, catalog, func(catalog *Catalog, err error) {
		reloads <- reload{catalog, err}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	t.Cleanup(stop)
	return catalog, reloads
}

// Waits below are genuine OS I/O: the watcher reacts to real inotify
// events from real filesystem writes.
func waitReload(t *testing.T, reloads <-chan reload) reload {
	t.Helper()
	select {
	case event := <-reloads:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a reload")
		return reload{}
	}
}

func TestWatchReloadsEditedPage(t *testing.T) {
	directory := writeContentDir(t)
	initial, reloads := startWatch(t, directory)

	path := filepath.Join(directory, "pages", "alpha.html")
	if err := os.WriteFile(path, []byte("<p>Edited</p>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	event := waitReload(t, reloads)
	if event.err != nil {
		t.Fatalf("reload error: %v", event.err)
	}
	if event.catalog.Digest() == initial.Digest() {
		t.Error("reloaded catalog has the initial digest")
	}
	if got := event.catalog.PageOrFallback("pages/alpha.html"); got != "<p>Edited</p>" {
		t.Errorf("reloaded page = %q", got)
	}
}

func TestWatchReportsInvalidManifest(t *testing.T) {
	directory := writeContentDir(t)
	_, reloads := startWatch(t, directory)

	path := filepath.Join(directory, "projects.jsonc")
	if err := os.WriteFile(path, []byte("[{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	event := waitReload(t, reloads)
	if event.err == nil {
		t.Fatal("expected a reload error for a broken manifest")
	}

	// Fixing the file recovers.
	if err := os.WriteFile(path, []byte(testManifest), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	event = waitReload(t, reloads)
	if event.err != nil || event.catalog == nil {
		t.Fatalf("reload after fix: catalog=%v err=%v", event.catalog, event.err)
	}
}

func TestWatchIgnoresUnchangedContent(t *testing.T) {
	directory := writeContentDir(t)
	_, reloads := startWatch(t, directory)

	// Rewrite a file with identical bytes: same digest, no reload.
	path := filepath.Join(directory, "site.yaml")
	if err := os.WriteFile(path, []byte(testSite), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case event := <-reloads:
		t.Fatalf("unexpected reload: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}
