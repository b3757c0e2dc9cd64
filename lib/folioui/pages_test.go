// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package folioui

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/folio/lib/pagerender"
	"github.com/bureau-foundation/folio/lib/schedule"
	"github.com/bureau-foundation/folio/lib/tabs"
	"github.com/bureau-foundation/folio/lib/tui"
)

// newTestEnv builds a page environment on a virtual clock. Dispatched
// tabs are recorded.
func newTestEnv(t *testing.T) (*env, *schedule.Queue, *[]tabs.Tab) {
	t.Helper()
	queue := schedule.NewQueue(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	var dispatched []tabs.Tab
	e := &env{
		scheduler: queue,
		theme:     tui.DefaultTheme,
		keys:      DefaultKeyMap,
		catalog:   defaultCatalog(t),
		dispatch:  func(tab tabs.Tab) { dispatched = append(dispatched, tab) },
	}
	e.renderer = pagerender.New(e.theme, e.catalog.ResolveImage)
	return e, queue, &dispatched
}

func TestHomeHeroTypes(t *testing.T) {
	e, queue, _ := newTestEnv(t)
	home := newHomePage(e)
	home.resize(100, 30)

	if strings.Contains(ansi.Strip(home.render()), "Hello") {
		t.Error("greeting shown before its delay")
	}
	queue.Advance(3 * time.Second)
	if !strings.Contains(ansi.Strip(home.render()), "Hello, this is") {
		t.Error("greeting not typed after three seconds")
	}
	queue.Advance(10 * time.Second)
	view := ansi.Strip(home.render())
	if !strings.Contains(view, "Welcome to my page!") {
		t.Error("welcome line not typed")
	}
	if home.animating() {
		t.Error("hero still animating after it finished")
	}
}

func TestHomeSectionsRevealOnScroll(t *testing.T) {
	e, queue, _ := newTestEnv(t)
	home := newHomePage(e)
	home.resize(100, 30)
	section := home.sections[0]

	queue.Advance(time.Second)
	if section.sequencer.Triggered() || home.workOn.Triggered() {
		t.Fatal("off-screen content triggered")
	}

	home.scrollTo(home.workOnBounds.Top - 5)
	if !home.workOn.Triggered() {
		t.Fatal("heading not triggered once scrolled into view")
	}

	home.scrollTo(section.bounds.Top)
	if !section.sequencer.Triggered() {
		t.Fatal("first section not triggered once scrolled into view")
	}
	queue.Advance(10 * time.Second)
	if !section.sequencer.Complete() {
		t.Error("section entrance did not complete")
	}

	// Sections replay: scrolling away resets them. The heading reveals
	// once and stays.
	home.scrollTo(0)
	if section.sequencer.Triggered() {
		t.Error("section still triggered after scrolling away")
	}
	if !home.workOn.Triggered() {
		t.Error("heading reset after scrolling away")
	}
}

func TestHomeStackedLayout(t *testing.T) {
	e, _, _ := newTestEnv(t)
	home := newHomePage(e)
	home.resize(60, 20)
	for index, section := range home.sections {
		if !section.stacked {
			t.Errorf("section %d side by side at width 60", index)
		}
	}
	home.resize(120, 20)
	for index, section := range home.sections {
		if section.stacked {
			t.Errorf("section %d stacked at width 120", index)
		}
	}
	if lines := strings.Split(home.render(), "\n"); len(lines) != 20 {
		t.Errorf("render has %d lines, want 20", len(lines))
	}
}

func TestHomeButtonClick(t *testing.T) {
	e, queue, dispatched := newTestEnv(t)
	home := newHomePage(e)
	home.resize(100, 30)

	home.scrollTo(home.maxOffset())
	queue.Advance(time.Second)
	button := home.ctaButton
	home.handleMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		button.x+1, button.y-home.offset+1)
	if len(*dispatched) != 1 || (*dispatched)[0] != tabs.Projects {
		t.Errorf("dispatched = %v, want [projects]", *dispatched)
	}
}

func TestGalleryFilter(t *testing.T) {
	e, queue, _ := newTestEnv(t)
	gallery := newProjectsPage(e)
	gallery.resize(100, 30)
	queue.Advance(5 * time.Second)

	total := len(gallery.visible)
	if total != len(e.catalog.Projects()) {
		t.Fatalf("unfiltered gallery shows %d of %d", total, len(e.catalog.Projects()))
	}

	gallery.handleKey(runeKey("/"))
	if !gallery.capturing() {
		t.Fatal("filter did not capture input")
	}
	for _, r := range "solidity" {
		gallery.handleKey(runeKey(string(r)))
	}
	if len(gallery.visible) == 0 || len(gallery.visible) == total {
		t.Fatalf("filter kept %d of %d cards", len(gallery.visible), total)
	}
	if name := e.catalog.Projects()[gallery.visible[0].index].Name; name != "AutoProof" {
		t.Errorf("best match = %q, want AutoProof", name)
	}

	gallery.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if gallery.capturing() {
		t.Error("Enter did not leave the filter")
	}
	if !strings.Contains(ansi.Strip(gallery.render()), "solidity") {
		t.Error("filter bar hidden while a filter is applied")
	}

	gallery.handleKey(tea.KeyMsg{Type: tea.KeyEscape})
	if len(gallery.visible) != total {
		t.Errorf("Esc left %d of %d cards", len(gallery.visible), total)
	}
}

func TestGalleryFilterRanksWholeWords(t *testing.T) {
	for _, query := range []string{"python", "PYTHON"} {
		t.Run(query, func(t *testing.T) {
			e, _, _ := newTestEnv(t)
			gallery := newProjectsPage(e)
			gallery.resize(100, 30)

			gallery.handleKey(runeKey("/"))
			for _, r := range query {
				gallery.handleKey(runeKey(string(r)))
			}
			if len(gallery.visible) < 2 {
				t.Fatalf("filter %q kept %d cards, want at least the two Python projects", query, len(gallery.visible))
			}
			var top []string
			for _, item := range gallery.visible[:2] {
				top = append(top, e.catalog.Projects()[item.index].Name)
			}
			slices.Sort(top)
			want := []string{"Emerging Application Privacy", "Readability of Insurance Documents"}
			if !slices.Equal(top, want) {
				t.Errorf("top matches for %q = %v, want %v", query, top, want)
			}
			for _, item := range gallery.visible[2:] {
				if item.score >= gallery.visible[1].score {
					t.Errorf("%s scores %d, not below the Python projects", e.catalog.Projects()[item.index].Name, item.score)
				}
			}
		})
	}
}

func TestGalleryNavigation(t *testing.T) {
	e, _, _ := newTestEnv(t)
	gallery := newProjectsPage(e)
	gallery.resize(110, 30)
	if gallery.columns != 3 {
		t.Fatalf("columns = %d at width 110, want 3", gallery.columns)
	}

	gallery.handleKey(runeKey("l"))
	if gallery.selected != 1 {
		t.Errorf("selected = %d after right, want 1", gallery.selected)
	}
	gallery.handleKey(runeKey("j"))
	if gallery.selected != 4 {
		t.Errorf("selected = %d after down, want 4", gallery.selected)
	}
	gallery.handleKey(runeKey("G"))
	if gallery.selected != len(gallery.visible)-1 {
		t.Errorf("selected = %d after bottom, want last", gallery.selected)
	}
	gallery.handleKey(runeKey("g"))
	if gallery.selected != 0 {
		t.Errorf("selected = %d after top, want 0", gallery.selected)
	}
}

func TestGalleryCardClick(t *testing.T) {
	e, _, _ := newTestEnv(t)
	gallery := newProjectsPage(e)
	gallery.resize(110, 30)

	x := gallery.gridLeft() + cardWidth + cardGap + 2
	y := gallery.gridTop() + 2
	position, ok := gallery.cardAt(x, y)
	if !ok || position != 1 {
		t.Fatalf("cardAt(%d, %d) = %d, %v, want 1, true", x, y, position, ok)
	}
	if _, ok := gallery.cardAt(gallery.gridLeft()+cardWidth, y); ok {
		t.Error("gap between cards hit a card")
	}
}

func TestAboutFlip(t *testing.T) {
	e, queue, _ := newTestEnv(t)
	about := newAboutPage(e)
	about.resize(100, 30)
	queue.Advance(5 * time.Second)

	if about.bioTop != about.card.y {
		t.Fatalf("width 100 should lay the card and bio side by side (bioTop=%d, card.y=%d)", about.bioTop, about.card.y)
	}
	front := ansi.Strip(about.render())
	if !strings.Contains(front, "Brisbane, Australia") {
		t.Fatal("front face missing the location")
	}
	if !strings.Contains(front, "Queensland") {
		t.Fatal("bio missing beside the card")
	}
	for _, line := range strings.Split(front, "\n")[about.card.y+1 : about.card.y+about.card.height-1] {
		if !strings.Contains(line, "│") {
			t.Fatalf("card border missing on row %q", line)
		}
	}

	about.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !about.animating() {
		t.Error("not animating mid-flip")
	}
	// A second press mid-flip is ignored.
	about.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	queue.Advance(flipDuration)
	view := ansi.Strip(about.render())
	if !strings.Contains(view, "Connect") || !strings.Contains(view, "@meganmhl") {
		t.Error("back face not shown after the flip")
	}

	about.handleMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		about.card.x+2, about.card.y+1)
	queue.Advance(flipDuration)
	if !strings.Contains(ansi.Strip(about.render()), "Brisbane, Australia") {
		t.Error("click did not flip back to the front")
	}
}

func TestAboutStopCancelsTimers(t *testing.T) {
	e, queue, _ := newTestEnv(t)
	about := newAboutPage(e)
	about.resize(100, 30)
	about.flip()
	about.stop()
	if queue.Pending() != 0 {
		t.Errorf("Pending() = %d after stop, want 0", queue.Pending())
	}
}
