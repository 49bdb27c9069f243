// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that reads the time or waits (the legacy id generator, the file
// watcher's debounce, the reload highlight) takes a Clock instead of calling
// the time package. Production wiring passes Real(). Tests pass Fake(),
// which stands still until Advance is called:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	watcher, _ := deckwatch.Watch(path, deckwatch.Options{Clock: c})
//	rewrite(path)
//	c.WaitForTimers(1)             // the watcher is now debouncing
//	c.Advance(100 * time.Millisecond)
//
// WaitForTimers closes the race between a goroutine registering a wait
// and the test advancing time.
package clock
