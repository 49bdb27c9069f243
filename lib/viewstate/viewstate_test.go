// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package viewstate

import "testing"

func TestNavigatorSaturates(t *testing.T) {
	navigator := NewNavigator(3)
	if !navigator.AtFirst() || navigator.Prev().Index() != 0 {
		t.Fatal("Prev at the first slide should stay put")
	}
	navigator = navigator.Next().Next().Next().Next()
	if navigator.Index() != 2 || !navigator.AtLast() {
		t.Fatalf("index = %d after saturating Next", navigator.Index())
	}
	if navigator.Prev().Index() != 1 {
		t.Error("Prev from last")
	}
}

func TestNavigatorJumpTo(t *testing.T) {
	tests := []struct {
		target, want int
	}{
		{0, 0}, {2, 2}, {4, 4}, {5, 4}, {100, 4}, {-1, 0},
	}
	for _, test := range tests {
		if got := NewNavigator(5).JumpTo(test.target).Index(); got != test.want {
			t.Errorf("JumpTo(%d) = %d, want %d", test.target, got, test.want)
		}
	}
	if got := NewNavigator(5).Last().First().Index(); got != 0 {
		t.Errorf("Last().First() = %d", got)
	}
}

func TestNavigatorResize(t *testing.T) {
	navigator := NewNavigator(5).JumpTo(4)
	if got := navigator.Resize(3).Index(); got != 2 {
		t.Errorf("shrinking past the index: %d, want 2", got)
	}
	if got := navigator.Resize(10).Index(); got != 4 {
		t.Errorf("growing moved the index to %d", got)
	}
	empty := navigator.Resize(0)
	if empty.Index() != 0 || empty.Count() != 0 {
		t.Errorf("empty deck: index %d count %d", empty.Index(), empty.Count())
	}
	if empty.Next().Index() != 0 || empty.Prev().Index() != 0 {
		t.Error("navigation on an empty deck moved")
	}
}

func TestNavigationSuppressed(t *testing.T) {
	tests := []struct {
		name   string
		panels Panels
		want   bool
	}{
		{"nothing open", Panels{}, false},
		{"notes and fullscreen", Panels{Notes: true, Fullscreen: true}, false},
		{"navigator", Panels{Navigator: true}, true},
		{"shortcuts", Panels{Shortcuts: true}, true},
		{"lightbox", Panels{Lightbox: true}, true},
		{"notice", Panels{Notice: true}, true},
		{"text input", Panels{InputFocused: true}, true},
	}
	for _, test := range tests {
		if got := test.panels.NavigationSuppressed(); got != test.want {
			t.Errorf("%s: NavigationSuppressed = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestCloseOverlays(t *testing.T) {
	panels := Panels{Notes: true, Shortcuts: true}
	if !panels.CloseOverlays() {
		t.Error("CloseOverlays reported nothing open")
	}
	if panels.Shortcuts || !panels.Notes {
		t.Errorf("panels after close = %+v", panels)
	}
	if panels.CloseOverlays() {
		t.Error("second CloseOverlays reported an open overlay")
	}
}

func TestSwipeClassification(t *testing.T) {
	tests := []struct {
		name                       string
		startX, startY, endX, endY int
		want                       Swipe
	}{
		{"drag left advances", 40, 10, 20, 11, SwipeLeft},
		{"drag right goes back", 20, 10, 40, 10, SwipeRight},
		{"short drag", 20, 10, 25, 10, SwipeNone},
		{"exactly threshold", 20, 10, 26, 10, SwipeNone},
		{"vertical dominates", 20, 0, 30, 20, SwipeNone},
		{"click", 20, 10, 20, 10, SwipeNone},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tracker := NewSwipeTracker(0).Start(test.startX, test.startY)
			tracker, got := tracker.End(test.endX, test.endY)
			if got != test.want {
				t.Errorf("swipe = %s, want %s", got, test.want)
			}
			if tracker.Active() {
				t.Error("tracker still active after End")
			}
		})
	}
}

func TestSwipeWithoutPress(t *testing.T) {
	if _, got := (SwipeTracker{}).End(0, 0); got != SwipeNone {
		t.Errorf("release without press = %s", got)
	}
	tracker := NewSwipeTracker(2).Start(10, 0).Cancel()
	if _, got := tracker.End(0, 0); got != SwipeNone {
		t.Errorf("cancelled press = %s", got)
	}
	if NewSwipeTracker(2).Threshold() != 2 {
		t.Error("custom threshold ignored")
	}
}
