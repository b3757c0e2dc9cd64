// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/folio/lib/content"
	"github.com/bureau-foundation/folio/lib/tabs"
	"github.com/bureau-foundation/folio/lib/tui"
)

// testClock is a manually advanced wall clock.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func defaultCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	catalog, err := content.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return catalog
}

func newTestModel(t *testing.T) (*Model, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	model := New(defaultCatalog(t), Options{Now: clock.Now})
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model, clock
}

// advance moves the clock forward and delivers a frame, the way a
// running program would after a tick.
func advance(model *Model, clock *testClock, d time.Duration) {
	clock.now = clock.now.Add(d)
	model.Update(frameMsg{})
}

func runeKey(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestViewLoadingBeforeSize(t *testing.T) {
	model := New(defaultCatalog(t), Options{})
	if view := model.View(); view != "Loading..." {
		t.Errorf("View() = %q, want Loading...", view)
	}
}

func TestInitialTab(t *testing.T) {
	model, _ := newTestModel(t)
	if model.Tab() != tabs.Home {
		t.Errorf("Tab() = %v, want home", model.Tab())
	}
	if _, ok := model.page.(*homePage); !ok {
		t.Errorf("mounted page is %T, want *homePage", model.page)
	}

	model = New(defaultCatalog(t), Options{Initial: tabs.About})
	if _, ok := model.page.(*aboutPage); !ok {
		t.Errorf("mounted page is %T, want *aboutPage", model.page)
	}
}

func TestViewDimensions(t *testing.T) {
	model, clock := newTestModel(t)
	advance(model, clock, 2*time.Second)

	lines := strings.Split(model.View(), "\n")
	if len(lines) != 40 {
		t.Fatalf("View has %d lines, want 40", len(lines))
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width > 100 {
			t.Errorf("line %d is %d cells wide", index, width)
		}
	}
	header := ansi.Strip(lines[0])
	for _, label := range []string{"Home", "Projects", "About Me", "Megan Ng"} {
		if !strings.Contains(header, label) {
			t.Errorf("header %q missing %q", header, label)
		}
	}
}

func TestTabKeysSwitchAfterExit(t *testing.T) {
	model, clock := newTestModel(t)

	model.Update(runeKey("2"))
	if model.Tab() != tabs.Projects {
		t.Fatalf("Tab() = %v after 2, want projects", model.Tab())
	}
	if _, ok := model.page.(*homePage); !ok {
		t.Fatalf("home page unmounted before its exit finished: %T", model.page)
	}

	advance(model, clock, tabs.DefaultTransition)
	if _, ok := model.page.(*projectsPage); !ok {
		t.Fatalf("mounted page is %T after exit, want *projectsPage", model.page)
	}

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	advance(model, clock, tabs.DefaultTransition)
	if _, ok := model.page.(*aboutPage); !ok {
		t.Fatalf("mounted page is %T after tab, want *aboutPage", model.page)
	}

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	advance(model, clock, tabs.DefaultTransition)
	if model.Tab() != tabs.Home {
		t.Errorf("tab wraps to %v, want home", model.Tab())
	}

	model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	advance(model, clock, tabs.DefaultTransition)
	if model.Tab() != tabs.About {
		t.Errorf("shift+tab gives %v, want about", model.Tab())
	}
}

func TestSelectProjectsFromAbout(t *testing.T) {
	clock := &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	model := New(defaultCatalog(t), Options{Now: clock.Now, Initial: tabs.About})
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	advance(model, clock, time.Second)

	about, ok := model.page.(*aboutPage)
	if !ok {
		t.Fatalf("initial page is %T, want *aboutPage", model.page)
	}
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !about.flipping() {
		t.Fatal("Enter did not start a flip")
	}

	model.Update(runeKey("2"))
	advance(model, clock, tabs.DefaultTransition)

	gallery, ok := model.page.(*projectsPage)
	if !ok {
		t.Fatalf("mounted page is %T, want *projectsPage", model.page)
	}
	if model.navigator.Mounted() != tabs.Projects {
		t.Errorf("Mounted() = %v, want projects", model.navigator.Mounted())
	}
	if gallery.modal != nil {
		t.Error("gallery mounted with a modal open")
	}
	if about.flipping() {
		t.Error("unmounted about page still has its flip timer")
	}
}

func TestRapidSelectionMountsLast(t *testing.T) {
	model, clock := newTestModel(t)

	model.Update(runeKey("2"))
	advance(model, clock, 100*time.Millisecond)
	model.Update(runeKey("3"))
	advance(model, clock, tabs.DefaultTransition)

	if model.navigator.Mounted() != tabs.About {
		t.Errorf("Mounted() = %v, want about", model.navigator.Mounted())
	}
	if _, ok := model.page.(*aboutPage); !ok {
		t.Errorf("mounted page is %T, want *aboutPage", model.page)
	}
}

func TestQuit(t *testing.T) {
	model, _ := newTestModel(t)
	_, cmd := model.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestHeaderClickSelectsTab(t *testing.T) {
	model, _ := newTestModel(t)
	model.View()

	var about tabHitRange
	for _, hit := range model.tabHitRanges {
		if hit.tab == tabs.About {
			about = hit
		}
	}
	if about.endX <= about.startX {
		t.Fatal("no hit range for the About tab")
	}
	model.Update(tea.MouseMsg{X: about.startX, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if model.Tab() != tabs.About {
		t.Errorf("Tab() = %v after header click, want about", model.Tab())
	}
}

func TestCallToActionOpensProjects(t *testing.T) {
	model, clock := newTestModel(t)
	home := model.page.(*homePage)

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.Tab() != tabs.Home {
		t.Fatal("Enter dispatched before the button appeared")
	}

	model.Update(runeKey("G"))
	advance(model, clock, time.Second)
	if !home.ctaReady() {
		t.Fatal("button not shown after scrolling to the bottom")
	}
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.Tab() != tabs.Projects {
		t.Errorf("Tab() = %v after Enter on the button, want projects", model.Tab())
	}
}

func openProjects(t *testing.T) (*Model, *testClock, *projectsPage) {
	t.Helper()
	model, clock := newTestModel(t)
	model.Update(runeKey("2"))
	advance(model, clock, 2*tabs.DefaultTransition)
	gallery, ok := model.page.(*projectsPage)
	if !ok {
		t.Fatalf("mounted page is %T, want *projectsPage", model.page)
	}
	return model, clock, gallery
}

func TestModalCapturesKeys(t *testing.T) {
	model, _, gallery := openProjects(t)

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if gallery.modal == nil {
		t.Fatal("Enter did not open the modal")
	}
	if !strings.Contains(ansi.Strip(model.View()), gallery.modal.project.Name) {
		t.Error("modal title not in view")
	}

	model.Update(runeKey("1"))
	if model.Tab() != tabs.Projects {
		t.Error("tab key reached the navigator while the modal was open")
	}

	model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if gallery.modal != nil {
		t.Error("Esc did not close the modal")
	}
}

func TestModalClosesOnOutsideClick(t *testing.T) {
	model, _, gallery := openProjects(t)

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if gallery.modal == nil {
		t.Fatal("Enter did not open the modal")
	}
	box := gallery.modal.box

	// Inside the box keeps it open.
	model.Update(tea.MouseMsg{X: box.x + box.width/2, Y: box.y + box.height/2 + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if gallery.modal == nil {
		t.Fatal("click inside the modal closed it")
	}

	model.Update(tea.MouseMsg{X: 0, Y: box.y + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if gallery.modal != nil {
		t.Error("click outside the modal left it open")
	}
}

func TestCatalogReload(t *testing.T) {
	model, _ := newTestModel(t)
	before := model.page

	replacement := defaultCatalog(t)
	model.Update(CatalogMsg{Catalog: replacement})
	if model.env.catalog != replacement {
		t.Error("catalog not swapped")
	}
	if model.page == before {
		t.Error("page not rebuilt after reload")
	}
	if _, ok := model.page.(*homePage); !ok {
		t.Errorf("reload mounted %T, want *homePage", model.page)
	}

	model.Update(CatalogMsg{Err: errors.New("bad manifest")})
	if model.env.catalog != replacement {
		t.Error("failed reload replaced the catalog")
	}
}

func TestReloadLogs(t *testing.T) {
	handler := &recordingHandler{}
	clock := &testClock{now: time.Now()}
	model := New(defaultCatalog(t), Options{Now: clock.Now, Logger: slog.New(handler)})

	cmd := model.reload(CatalogMsg{Err: errors.New("bad manifest")})
	if len(handler.records) != 0 {
		t.Fatal("logged from inside Update")
	}
	cmd()
	if len(handler.records) != 1 || handler.records[0].Level != slog.LevelWarn {
		t.Fatalf("records = %v, want one warning", handler.records)
	}
}

func TestLogNoticeExpires(t *testing.T) {
	model, clock := newTestModel(t)

	model.Update(tui.LogRecordMsg{Summary: "content reloaded", Level: slog.LevelInfo})
	if !strings.Contains(ansi.Strip(model.View()), "content reloaded") {
		t.Fatal("notice not shown")
	}
	advance(model, clock, tui.LogNoticeDuration)
	if strings.Contains(ansi.Strip(model.View()), "content reloaded") {
		t.Error("notice still shown after it expired")
	}
}

func TestFrameScheduling(t *testing.T) {
	model, clock := newTestModel(t)

	// The entrance is playing, so a frame is pending within one interval.
	if model.frameAt.IsZero() {
		t.Fatal("no frame pending during the entrance")
	}
	if limit := clock.now.Add(tui.FrameInterval); model.frameAt.After(limit) {
		t.Errorf("frameAt = %v, want no later than %v", model.frameAt, limit)
	}

	// A later request does not replace an earlier pending one.
	if cmd := model.frame(); cmd != nil {
		t.Error("frame() requested a second tick while one was pending")
	}

	// A stale frame leaves the pending request alone.
	pending := model.frameAt
	model.Update(frameMsg{generation: model.frameGeneration - 1})
	if !model.frameAt.Equal(pending) {
		t.Error("stale frame cleared the pending request")
	}

	advance(model, clock, time.Minute)
	if model.animating() {
		t.Error("still animating a minute after startup")
	}
}

type recordingHandler struct {
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.records = append(h.records, record)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }
