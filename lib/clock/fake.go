// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for testing. Time advances only
// when Advance is called. AfterFunc callbacks are invoked synchronously
// during Advance in deadline order; a callback may schedule further
// timers, which fire within the same Advance if their deadline falls
// inside the advanced window.
type FakeClock struct {
	mu       sync.Mutex
	current  time.Time
	sequence uint64
	waiters  []*fakeWaiter
}

// fakeWaiter is one pending AfterFunc registration.
type fakeWaiter struct {
	deadline time.Time
	callback func()

	// sequence breaks deadline ties in registration order.
	sequence uint64

	stopped bool
	fired   bool
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc schedules f to be called after duration d. If d <= 0, f is
// called synchronously before AfterFunc returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return NewTimer(func() bool { return false })
	}

	c.mu.Lock()
	c.sequence++
	waiter := &fakeWaiter{
		deadline: c.current.Add(d),
		callback: f,
		sequence: c.sequence,
	}
	c.waiters = append(c.waiters, waiter)
	c.mu.Unlock()

	return NewTimer(func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if waiter.stopped || waiter.fired {
			return false
		}
		waiter.stopped = true
		return true
	})
}

// Advance moves the clock forward by d and fires every timer whose
// deadline falls within the new time, in deadline order. The clock's
// Now reports each timer's deadline while its callback runs, so
// callbacks that schedule follow-up timers measure from the moment
// they fired.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()

	for {
		waiter := c.nextExpired(target)
		if waiter == nil {
			break
		}
		waiter.callback()
	}

	c.mu.Lock()
	c.current = target
	c.mu.Unlock()
}

// nextExpired removes and returns the earliest unstopped waiter with a
// deadline at or before target, moving the clock to its deadline.
// Returns nil when none remain.
func (c *FakeClock) nextExpired(target time.Time) *fakeWaiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	var remaining []*fakeWaiter
	for _, waiter := range c.waiters {
		if !waiter.stopped {
			remaining = append(remaining, waiter)
		}
	}
	c.waiters = remaining

	sort.SliceStable(c.waiters, func(i, j int) bool {
		left, right := c.waiters[i], c.waiters[j]
		if left.deadline.Equal(right.deadline) {
			return left.sequence < right.sequence
		}
		return left.deadline.Before(right.deadline)
	})

	if len(c.waiters) == 0 || c.waiters[0].deadline.After(target) {
		return nil
	}

	waiter := c.waiters[0]
	c.waiters = c.waiters[1:]
	waiter.fired = true
	if waiter.deadline.After(c.current) {
		c.current = waiter.deadline
	}
	return waiter
}

// PendingCount returns the number of timers that are registered and
// neither stopped nor fired.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, waiter := range c.waiters {
		if !waiter.stopped && !waiter.fired {
			count++
		}
	}
	return count
}
