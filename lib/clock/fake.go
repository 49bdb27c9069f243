// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"sync"
	"time"
)

// Fake returns a FakeClock reading initial until advanced. It is safe
// for concurrent use.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{current: initial}
	clock.changed = sync.NewCond(&clock.mu)
	return clock
}

// FakeClock is a Clock whose time moves only when Advance is called.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*waiter
	changed *sync.Cond
}

// waiter is a pending After registration.
type waiter struct {
	deadline time.Time
	channel  chan time.Time
}

// Now returns the fake time.
func (clock *FakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.current
}

// After registers a one-shot waiter. A non-positive d fires without
// registering.
func (clock *FakeClock) After(d time.Duration) <-chan time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- clock.current
		return channel
	}
	clock.registerLocked(&waiter{deadline: clock.current.Add(d), channel: channel})
	return channel
}

// Advance moves time forward by d and fires every waiter whose
// deadline has passed, in deadline order.
func (clock *FakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	clock.current = clock.current.Add(d)
	target := clock.current
	clock.mu.Unlock()

	for _, fired := range clock.collectDue(target) {
		fired.channel <- target
	}
}

// collectDue removes due waiters and returns them sorted by deadline.
func (clock *FakeClock) collectDue(target time.Time) []*waiter {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	var due, pending []*waiter
	for _, registered := range clock.waiters {
		if registered.deadline.After(target) {
			pending = append(pending, registered)
		} else {
			due = append(due, registered)
		}
	}
	slices.SortStableFunc(due, func(a, b *waiter) int {
		return a.deadline.Compare(b.deadline)
	})
	clock.waiters = pending
	return due
}

// WaitForTimers blocks until at least n waiters are pending.
func (clock *FakeClock) WaitForTimers(n int) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	for len(clock.waiters) < n {
		clock.changed.Wait()
	}
}

// PendingCount returns the number of active waiters.
func (clock *FakeClock) PendingCount() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.waiters)
}

func (clock *FakeClock) registerLocked(registered *waiter) {
	clock.waiters = append(clock.waiters, registered)
	clock.changed.Broadcast()
}
