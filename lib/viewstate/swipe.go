// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package viewstate

// Swipe is the classification of a completed gesture.
type Swipe int

const (
	SwipeNone Swipe = iota
	// SwipeLeft advances to the next slide.
	SwipeLeft
	// SwipeRight goes back to the previous slide.
	SwipeRight
)

func (swipe Swipe) String() string {
	switch swipe {
	case SwipeLeft:
		return "left"
	case SwipeRight:
		return "right"
	default:
		return "none"
	}
}

// DefaultSwipeThreshold is the horizontal distance in terminal cells a
// drag must exceed to count as a swipe.
const DefaultSwipeThreshold = 6

// SwipeTracker turns a press and a release into a swipe. Coordinates are
// terminal cells. The zero value uses DefaultSwipeThreshold.
type SwipeTracker struct {
	threshold int
	active    bool
	startX    int
	startY    int
}

// NewSwipeTracker returns a tracker with the given threshold. A
// non-positive threshold selects DefaultSwipeThreshold.
func NewSwipeTracker(threshold int) SwipeTracker {
	return SwipeTracker{threshold: threshold}
}

// Threshold returns the effective threshold.
func (tracker SwipeTracker) Threshold() int {
	if tracker.threshold <= 0 {
		return DefaultSwipeThreshold
	}
	return tracker.threshold
}

// Active reports whether a press is being tracked.
func (tracker SwipeTracker) Active() bool { return tracker.active }

// Start records the press position.
func (tracker SwipeTracker) Start(x, y int) SwipeTracker {
	tracker.active = true
	tracker.startX, tracker.startY = x, y
	return tracker
}

// End classifies the gesture ending at (x, y) and resets the tracker.
// A release without a press is SwipeNone.
func (tracker SwipeTracker) End(x, y int) (SwipeTracker, Swipe) {
	if !tracker.active {
		return tracker, SwipeNone
	}
	tracker.active = false
	deltaX := tracker.startX - x
	deltaY := tracker.startY - y
	if abs(deltaX) <= tracker.Threshold() || abs(deltaX) <= abs(deltaY) {
		return tracker, SwipeNone
	}
	if deltaX > 0 {
		return tracker, SwipeLeft
	}
	return tracker, SwipeRight
}

// Cancel drops any tracked press.
func (tracker SwipeTracker) Cancel() SwipeTracker {
	tracker.active = false
	return tracker
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
