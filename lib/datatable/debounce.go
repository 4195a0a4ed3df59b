// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"time"

	"github.com/bureau-foundation/toolshed/lib/clock"
)

// Debouncer coalesces a burst of triggers into a single call. Each
// Trigger stops the pending timer and schedules a new one, so only the
// last action within the window survives. At most one timer is pending
// at any time.
type Debouncer struct {
	clock  clock.Clock
	window time.Duration

	timer   *clock.Timer
	pending func()
	closed  bool
}

// NewDebouncer returns a Debouncer with the given window. A window of
// zero or less runs each action immediately.
func NewDebouncer(clock clock.Clock, window time.Duration) *Debouncer {
	return &Debouncer{clock: clock, window: window}
}

// Trigger schedules action to run after the window, replacing any
// action that is still pending.
func (debouncer *Debouncer) Trigger(action func()) {
	if debouncer.closed {
		return
	}
	debouncer.Cancel()
	if debouncer.window <= 0 {
		action()
		return
	}
	debouncer.pending = action
	var timer *clock.Timer
	timer = debouncer.clock.AfterFunc(debouncer.window, func() {
		// A stale callback (its timer already replaced) must not
		// run the newer action early.
		if debouncer.timer != timer {
			return
		}
		debouncer.fire()
	})
	debouncer.timer = timer
}

// Flush runs the pending action immediately. Returns false if nothing
// was pending.
func (debouncer *Debouncer) Flush() bool {
	if debouncer.pending == nil {
		return false
	}
	debouncer.timer.Stop()
	debouncer.fire()
	return true
}

// Cancel drops the pending action without running it.
func (debouncer *Debouncer) Cancel() {
	if debouncer.timer != nil {
		debouncer.timer.Stop()
	}
	debouncer.timer = nil
	debouncer.pending = nil
}

// Pending reports whether an action is scheduled.
func (debouncer *Debouncer) Pending() bool {
	return debouncer.pending != nil
}

// Close cancels the pending action and turns later Triggers into
// no-ops.
func (debouncer *Debouncer) Close() {
	debouncer.Cancel()
	debouncer.closed = true
}

func (debouncer *Debouncer) fire() {
	action := debouncer.pending
	debouncer.timer = nil
	debouncer.pending = nil
	if action != nil {
		action()
	}
}
