// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"time"

	"github.com/bureau-foundation/toolshed/lib/clock"
)

// Bulk bar transition timing defaults.
const (
	// DefaultExitDelay is how long the bar stays in PhaseExiting
	// before it is hidden, leaving room for the exit animation.
	DefaultExitDelay = 300 * time.Millisecond

	// DefaultEnterDuration is how long the bar stays in PhaseEntering
	// after the first row is selected.
	DefaultEnterDuration = 200 * time.Millisecond
)

// BulkPhase is the lifecycle phase of the floating bulk-action bar.
type BulkPhase int

const (
	// PhaseHidden means the bar is not rendered.
	PhaseHidden BulkPhase = iota
	// PhaseEntering means the bar is animating in.
	PhaseEntering
	// PhaseVisible means the bar is fully shown.
	PhaseVisible
	// PhaseExiting means the selection emptied and the bar is
	// animating out; it is hidden when the exit delay elapses.
	PhaseExiting
)

func (phase BulkPhase) String() string {
	switch phase {
	case PhaseHidden:
		return "hidden"
	case PhaseEntering:
		return "entering"
	case PhaseVisible:
		return "visible"
	case PhaseExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// BulkBar derives the bar's phase from selection-size changes. It
// keeps at most one pending hide timer and at most one pending enter
// timer; a selection that becomes non-empty during PhaseExiting stops
// the hide timer and returns straight to PhaseVisible.
type BulkBar struct {
	clock         clock.Clock
	exitDelay     time.Duration
	enterDuration time.Duration

	phase    BulkPhase
	count    int
	changed  time.Time
	onChange func(BulkPhase)

	hideTimer  *clock.Timer
	enterTimer *clock.Timer
	closed     bool
}

// BulkTiming configures the bar transitions. Zero values select the
// defaults; a negative EnterDuration skips PhaseEntering.
type BulkTiming struct {
	ExitDelay     time.Duration
	EnterDuration time.Duration
}

// NewBulkBar returns a bar in PhaseHidden. onChange (optional) is
// called after every phase transition.
func NewBulkBar(clock clock.Clock, timing BulkTiming, onChange func(BulkPhase)) *BulkBar {
	exitDelay := timing.ExitDelay
	if exitDelay <= 0 {
		exitDelay = DefaultExitDelay
	}
	enterDuration := timing.EnterDuration
	if enterDuration == 0 {
		enterDuration = DefaultEnterDuration
	}
	return &BulkBar{
		clock:         clock,
		exitDelay:     exitDelay,
		enterDuration: enterDuration,
		phase:         PhaseHidden,
		changed:       clock.Now(),
		onChange:      onChange,
	}
}

// SelectionChanged feeds the current selection size into the state
// machine.
func (bar *BulkBar) SelectionChanged(count int) {
	if bar.closed {
		return
	}
	bar.count = count

	if count > 0 {
		switch bar.phase {
		case PhaseHidden:
			if bar.enterDuration < 0 {
				bar.transition(PhaseVisible)
				return
			}
			bar.transition(PhaseEntering)
			bar.enterTimer = bar.clock.AfterFunc(bar.enterDuration, func() {
				bar.enterTimer = nil
				if bar.phase == PhaseEntering {
					bar.transition(PhaseVisible)
				}
			})
		case PhaseExiting:
			bar.stopHide()
			bar.transition(PhaseVisible)
		}
		return
	}

	switch bar.phase {
	case PhaseEntering, PhaseVisible:
		bar.stopEnter()
		bar.transition(PhaseExiting)
		bar.hideTimer = bar.clock.AfterFunc(bar.exitDelay, func() {
			bar.hideTimer = nil
			if bar.phase == PhaseExiting && bar.count == 0 {
				bar.transition(PhaseHidden)
			}
		})
	}
}

// Phase returns the current phase.
func (bar *BulkBar) Phase() BulkPhase {
	return bar.phase
}

// Shown reports whether the bar should be rendered (any phase other
// than PhaseHidden).
func (bar *BulkBar) Shown() bool {
	return bar.phase != PhaseHidden
}

// Count returns the live selected-row count.
func (bar *BulkBar) Count() int {
	return bar.count
}

// Progress returns how far the current enter or exit transition has
// advanced, from 0 to 1. PhaseVisible reports 1 and PhaseHidden 0.
func (bar *BulkBar) Progress() float64 {
	var duration time.Duration
	switch bar.phase {
	case PhaseHidden:
		return 0
	case PhaseVisible:
		return 1
	case PhaseEntering:
		duration = bar.enterDuration
	case PhaseExiting:
		duration = bar.exitDelay
	}
	if duration <= 0 {
		return 1
	}
	elapsed := bar.clock.Now().Sub(bar.changed)
	if elapsed >= duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(duration)
}

// HideTimerPending reports whether a hide timer is scheduled.
func (bar *BulkBar) HideTimerPending() bool {
	return bar.hideTimer != nil
}

// Close stops any pending timer. Later selection changes are ignored.
func (bar *BulkBar) Close() {
	bar.stopHide()
	bar.stopEnter()
	bar.closed = true
}

func (bar *BulkBar) transition(phase BulkPhase) {
	bar.phase = phase
	bar.changed = bar.clock.Now()
	if bar.onChange != nil {
		bar.onChange(phase)
	}
}

func (bar *BulkBar) stopHide() {
	if bar.hideTimer != nil {
		bar.hideTimer.Stop()
		bar.hideTimer = nil
	}
}

func (bar *BulkBar) stopEnter() {
	if bar.enterTimer != nil {
		bar.enterTimer.Stop()
		bar.enterTimer = nil
	}
}
