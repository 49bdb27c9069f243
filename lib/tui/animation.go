// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "time"

// HeatDecayDuration is how long an item stays highlighted after it
// changes. Heat starts at 1.0 and decays linearly to 0.0.
const HeatDecayDuration = 3 * time.Second

// HeatTickInterval is the re-render interval while any item is hot.
const HeatTickInterval = 100 * time.Millisecond

// HeatTracker maps item ids to the time they last changed. Screens
// use it to highlight slides that a file reload replaced.
type HeatTracker struct {
	ignitions map[string]time.Time
}

// NewHeatTracker creates an empty tracker.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{ignitions: make(map[string]time.Time)}
}

// Ignite records a change to itemID at now, restarting its decay.
func (tracker *HeatTracker) Ignite(itemID string, now time.Time) {
	tracker.ignitions[itemID] = now
}

// Heat returns the current intensity for an item: 1.0 at ignition,
// 0.0 once [HeatDecayDuration] has passed or if it never changed.
func (tracker *HeatTracker) Heat(itemID string, now time.Time) float64 {
	ignition, exists := tracker.ignitions[itemID]
	if !exists {
		return 0
	}
	elapsed := now.Sub(ignition)
	if elapsed >= HeatDecayDuration {
		return 0
	}
	return 1 - float64(elapsed)/float64(HeatDecayDuration)
}

// HasHot reports whether any item still has heat, meaning the tick
// should keep running. Fully decayed entries are dropped.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for itemID, ignition := range tracker.ignitions {
		if now.Sub(ignition) < HeatDecayDuration {
			hot = true
			continue
		}
		delete(tracker.ignitions, itemID)
	}
	return hot
}
