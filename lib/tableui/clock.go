// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"sync/atomic"
	"time"

	"github.com/bureau-foundation/toolshed/lib/clock"
)

// Loop timer states.
const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

// LoopClock is a clock.Clock whose callbacks run on the bubbletea
// event loop. The base clock measures time; when a base timer expires
// the LoopClock posts a timerFiredMsg through the ProgramRef, and the
// Model runs the callback inside Update.
type LoopClock struct {
	base    clock.Clock
	program *ProgramRef
}

// NewLoopClock returns a loop-bound clock over base.
func NewLoopClock(base clock.Clock, program *ProgramRef) *LoopClock {
	return &LoopClock{base: base, program: program}
}

// Now returns the base clock's time.
func (loop *LoopClock) Now() time.Time {
	return loop.base.Now()
}

// AfterFunc schedules f to run on the event loop after d. Stop returns
// true if the callback had not yet run and now never will, including
// when its message is already queued.
func (loop *LoopClock) AfterFunc(d time.Duration, f func()) *clock.Timer {
	timer := &loopTimer{callback: f}
	base := loop.base.AfterFunc(d, func() {
		loop.program.Send(timerFiredMsg{timer: timer})
	})
	return clock.NewTimer(func() bool {
		stopped := timer.state.CompareAndSwap(timerPending, timerStopped)
		base.Stop()
		return stopped
	})
}

type loopTimer struct {
	callback func()
	state    atomic.Int32
}

// timerFiredMsg carries an expired LoopClock timer to Update.
type timerFiredMsg struct {
	timer *loopTimer
}

// run executes the callback unless the timer was stopped.
func (message timerFiredMsg) run() bool {
	if !message.timer.state.CompareAndSwap(timerPending, timerFired) {
		return false
	}
	message.timer.callback()
	return true
}
