// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func keyRunes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestSpliceOverlay(t *testing.T) {
	view := "abcdefgh\nijklmnop\nqrstuvwx"
	got := ansi.Strip(SpliceOverlay(view, []string{"XY", "ZW"}, 3, 1))
	want := "abcdefgh\nijkXYnop\nqrsZWvwx"
	if got != want {
		t.Errorf("SpliceOverlay =\n%s\nwant\n%s", got, want)
	}
}

func TestSpliceOverlayClipsRows(t *testing.T) {
	view := "aaaa\nbbbb"
	got := ansi.Strip(SpliceOverlay(view, []string{"1", "2", "3"}, 0, 1))
	if got != "aaaa\n1bbb" {
		t.Errorf("first overlay line should land on row 1, got %q", got)
	}
}

func TestTextModalEditing(t *testing.T) {
	modal := NewTextModal("Speaker notes", "hello", DarkTheme)
	if y, x := modal.Cursor(); y != 0 || x != 5 {
		t.Fatalf("initial cursor = %d,%d, want end of text", y, x)
	}

	modal.Update(keyRunes(" world"))
	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	modal.Update(keyRunes("line two"))
	if got := modal.Value(); got != "hello world\nline two" {
		t.Fatalf("Value = %q", got)
	}

	modal.Update(tea.KeyMsg{Type: tea.KeyHome})
	modal.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := modal.Value(); got != "hello worldline two" {
		t.Errorf("backspace at line start should join lines, got %q", got)
	}

	modal.Update(tea.KeyMsg{Type: tea.KeyEnd})
	modal.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	modal.Update(tea.KeyMsg{Type: tea.KeyLeft})
	modal.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if got := modal.Value(); got != "hello worldline t" {
		t.Errorf("Value after deletes = %q", got)
	}
}

func TestTextModalVerticalMovementClampsColumn(t *testing.T) {
	modal := NewTextModal("Code", "a long first line\nab", DarkTheme)
	modal.Update(tea.KeyMsg{Type: tea.KeyUp})
	if y, x := modal.Cursor(); y != 0 || x != 2 {
		t.Errorf("after up cursor = %d,%d, want 0,2", y, x)
	}
	modal.Update(tea.KeyMsg{Type: tea.KeyEnd})
	modal.Update(tea.KeyMsg{Type: tea.KeyDown})
	if y, x := modal.Cursor(); y != 1 || x != 2 {
		t.Errorf("after down cursor = %d,%d, want 1,2", y, x)
	}
}

func TestTextModalDoesNotAliasLines(t *testing.T) {
	modal := NewTextModal("Notes", "abc", DarkTheme)
	snapshot := modal
	modal.Update(keyRunes("d"))
	if snapshot.Value() != "abc" {
		t.Errorf("copy of modal changed to %q", snapshot.Value())
	}
}

func TestTextModalRender(t *testing.T) {
	modal := NewTextModal("Speaker notes", "remember the demo", DarkTheme)
	lines, x, y := modal.Render(80, 24)
	if x < 0 || y < 0 {
		t.Fatalf("anchor = %d,%d", x, y)
	}
	joined := ansi.Strip(strings.Join(lines, "\n"))
	for _, want := range []string{"Speaker notes", "remember the demo", "Ctrl+S save"} {
		if !strings.Contains(joined, want) {
			t.Errorf("modal missing %q:\n%s", want, joined)
		}
	}
	width := ansi.StringWidth(lines[0])
	for index, line := range lines {
		if ansi.StringWidth(line) != width {
			t.Errorf("line %d width %d, want %d", index, ansi.StringWidth(line), width)
		}
	}
}

func TestDropdown(t *testing.T) {
	options := []DropdownOption{{"One", "1"}, {"Two", "2"}, {"Three", "3"}}
	dropdown := NewDropdown("level", options, "2")
	if dropdown.Selected().Value != "2" {
		t.Fatalf("initial selection = %q, want 2", dropdown.Selected().Value)
	}
	dropdown.MoveDown()
	dropdown.MoveDown()
	if dropdown.Selected().Value != "1" {
		t.Errorf("MoveDown should wrap to the top, got %q", dropdown.Selected().Value)
	}
	dropdown.MoveUp()
	if dropdown.Selected().Value != "3" {
		t.Errorf("MoveUp should wrap to the bottom, got %q", dropdown.Selected().Value)
	}

	dropdown.AnchorX, dropdown.AnchorY = 10, 5
	if !dropdown.Contains(10, 5) || !dropdown.Contains(10+dropdown.Width()-1, 7) {
		t.Error("Contains rejects points inside the menu")
	}
	if dropdown.Contains(9, 5) || dropdown.Contains(10, 8) {
		t.Error("Contains accepts points outside the menu")
	}
	if dropdown.OptionAtY(6) != 1 || dropdown.OptionAtY(4) != -1 {
		t.Error("OptionAtY maps rows incorrectly")
	}

	lines := dropdown.Render(DarkTheme)
	if len(lines) != 3 {
		t.Fatalf("Render produced %d lines", len(lines))
	}
	for _, line := range lines {
		if ansi.StringWidth(line) != dropdown.Width() {
			t.Errorf("line %q has width %d, want %d", ansi.Strip(line), ansi.StringWidth(line), dropdown.Width())
		}
	}
	if !strings.Contains(ansi.Strip(lines[2]), "> Three") {
		t.Errorf("selected line = %q", ansi.Strip(lines[2]))
	}
}

func TestPanelRender(t *testing.T) {
	panel := Panel{Title: "Shortcuts", Lines: []string{"→  next slide", "←  previous slide"}, Footer: "Esc close"}
	lines, x, y := panel.Render(DarkTheme, 80, 24)
	joined := ansi.Strip(strings.Join(lines, "\n"))
	for _, want := range []string{"Shortcuts", "next slide", "Esc close"} {
		if !strings.Contains(joined, want) {
			t.Errorf("panel missing %q:\n%s", want, joined)
		}
	}
	if x <= 0 || y <= 0 {
		t.Errorf("small panel should be centered away from the corner, anchor %d,%d", x, y)
	}
}

func TestPanelFitsScreenHeight(t *testing.T) {
	panel := Panel{Title: "Long", Footer: "footer"}
	for range 50 {
		panel.Lines = append(panel.Lines, "line")
	}
	lines, _, _ := panel.Render(DarkTheme, 40, 12)
	if len(lines) > 12 {
		t.Errorf("panel has %d lines on a 12-line screen", len(lines))
	}
	if !strings.Contains(ansi.Strip(strings.Join(lines, "\n")), "footer") {
		t.Error("footer dropped when truncating")
	}
}

func TestRenderScrollbar(t *testing.T) {
	bar := strings.Split(ansi.Strip(RenderScrollbar(DarkTheme, 10, 100, 10, 90, true)), "\n")
	if len(bar) != 10 {
		t.Fatalf("scrollbar has %d rows", len(bar))
	}
	if bar[9] != "┃" || bar[0] != "│" {
		t.Errorf("scrolled to the end, thumb should sit at the bottom: %q", bar)
	}
	full := ansi.Strip(RenderScrollbar(DarkTheme, 3, 2, 10, 0, false))
	if full != "┃\n┃\n┃" {
		t.Errorf("content that fits should fill the track, got %q", full)
	}
	if RenderScrollbar(DarkTheme, 0, 1, 1, 0, false) != "" {
		t.Error("zero height should render nothing")
	}
}

func TestHeatTracker(t *testing.T) {
	tracker := NewHeatTracker()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracker.Ignite("slide-1", start)

	if heat := tracker.Heat("slide-1", start); heat != 1 {
		t.Errorf("heat at ignition = %v", heat)
	}
	if heat := tracker.Heat("slide-1", start.Add(HeatDecayDuration/2)); heat < 0.49 || heat > 0.51 {
		t.Errorf("heat at half decay = %v", heat)
	}
	if tracker.Heat("slide-2", start) != 0 {
		t.Error("untouched item has heat")
	}
	if !tracker.HasHot(start.Add(time.Second)) {
		t.Error("HasHot false during decay")
	}
	if tracker.HasHot(start.Add(HeatDecayDuration)) {
		t.Error("HasHot true after decay")
	}
	if tracker.Heat("slide-1", start) != 0 {
		t.Error("decayed entry was not dropped")
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		match   bool
	}{
		{"substring", "Architecture overview", "overview", true},
		{"non-contiguous", "Keyboard navigation", "kbnav", true},
		{"case-insensitive", "GETTING STARTED", "start", true},
		{"uppercase pattern", "getting started", "START", true},
		{"no match", "Welcome", "xyz", false},
		{"empty pattern", "Welcome", "", false},
		{"empty text", "", "w", false},
	}
	slab := NewSlab()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := FuzzyMatch(test.text, []rune(test.pattern), slab)
			if result.Matched() != test.match {
				t.Fatalf("Matched() = %v, want %v (score %d)", result.Matched(), test.match, result.Score)
			}
			if test.match && len(result.Positions) != len([]rune(test.pattern)) {
				t.Errorf("positions = %v, want one per pattern rune", result.Positions)
			}
			for index := 1; index < len(result.Positions); index++ {
				if result.Positions[index] <= result.Positions[index-1] {
					t.Errorf("positions not ascending: %v", result.Positions)
				}
			}
		})
	}
}

func TestFuzzyMatchPrefersTighterMatch(t *testing.T) {
	tight := FuzzyMatch("code sample", []rune("code"), nil)
	loose := FuzzyMatch("closing demo", []rune("code"), nil)
	if !tight.Matched() || !loose.Matched() {
		t.Fatalf("both should match: %d %d", tight.Score, loose.Score)
	}
	if tight.Score <= loose.Score {
		t.Errorf("contiguous match scored %d, scattered match %d", tight.Score, loose.Score)
	}
}
