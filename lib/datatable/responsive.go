// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"time"

	"github.com/bureau-foundation/toolshed/lib/clock"
)

// Independent breakpoints used by different consumers. Widths are in
// the host's viewport unit (CSS pixels for a browser host; the terminal
// front end configures column-based breakpoints of its own).
const (
	// DataBreakpoint switches the data browser to the card layout.
	DataBreakpoint = 768

	// NavigationBreakpoint collapses the navigation shell.
	NavigationBreakpoint = 1024
)

// ViewportSource delivers viewport width changes. Subscribe calls
// observer for each resize event and returns a function that removes
// the subscription.
type ViewportSource interface {
	Subscribe(observer func(width int)) (unsubscribe func())
}

// Responsive derives compact-versus-wide layout from viewport width.
// It holds no other state: switching layout never touches selection,
// filtering, or paging.
type Responsive struct {
	breakpoint int
	width      int
	compact    bool

	debounce    *Debouncer
	onChange    func(compact bool)
	unsubscribe func()
}

// NewResponsive returns a selector for breakpoint (<= 0 selects
// DataBreakpoint). With a positive resizeDebounce, bursts of resize
// events are coalesced and only the last width is evaluated.
func NewResponsive(breakpoint int, clock clock.Clock, resizeDebounce time.Duration, onChange func(compact bool)) *Responsive {
	if breakpoint <= 0 {
		breakpoint = DataBreakpoint
	}
	return &Responsive{
		breakpoint: breakpoint,
		debounce:   NewDebouncer(clock, resizeDebounce),
		onChange:   onChange,
	}
}

// Observe records a resize event.
func (responsive *Responsive) Observe(width int) {
	responsive.debounce.Trigger(func() {
		responsive.evaluate(width)
	})
}

// Attach subscribes to source, replacing any earlier subscription.
func (responsive *Responsive) Attach(source ViewportSource) {
	responsive.Detach()
	responsive.unsubscribe = source.Subscribe(responsive.Observe)
}

// Detach drops the current viewport subscription, if any.
func (responsive *Responsive) Detach() {
	if responsive.unsubscribe != nil {
		responsive.unsubscribe()
		responsive.unsubscribe = nil
	}
}

// Compact reports whether the card layout is active. Before the first
// observation the width is unknown and the tabular layout is used.
func (responsive *Responsive) Compact() bool {
	return responsive.compact
}

// Width returns the last evaluated width (0 before any observation).
func (responsive *Responsive) Width() int {
	return responsive.width
}

// Breakpoint returns the configured breakpoint.
func (responsive *Responsive) Breakpoint() int {
	return responsive.breakpoint
}

// Close cancels any pending evaluation and detaches from the source.
func (responsive *Responsive) Close() {
	responsive.debounce.Close()
	responsive.Detach()
}

func (responsive *Responsive) evaluate(width int) {
	responsive.width = width
	compact := width > 0 && width < responsive.breakpoint
	if compact == responsive.compact {
		return
	}
	responsive.compact = compact
	if responsive.onChange != nil {
		responsive.onChange(compact)
	}
}
