// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "time"

// FlashDuration is how long a record stays highlighted after a live
// data source changed it. Intensity decays linearly to zero.
const FlashDuration = 3 * time.Second

// FlashKind distinguishes the change that caused a flash.
type FlashKind int

const (
	// FlashPut marks a record that was created or updated.
	FlashPut FlashKind = iota
	// FlashRemove marks a record that was removed.
	FlashRemove
)

type flash struct {
	start time.Time
	kind  FlashKind
}

// FlashTracker remembers when records changed so renderers can tint
// them. It holds timestamps only; callers pass the current time, so
// a fake clock drives it deterministically.
type FlashTracker struct {
	flashes map[string]flash
}

// NewFlashTracker returns an empty tracker.
func NewFlashTracker() *FlashTracker {
	return &FlashTracker{flashes: make(map[string]flash)}
}

// Mark starts (or restarts) the flash for id.
func (tracker *FlashTracker) Mark(id string, kind FlashKind, now time.Time) {
	tracker.flashes[id] = flash{start: now, kind: kind}
}

// Intensity returns 1 at the moment of the change, decaying to 0 over
// FlashDuration. Unknown ids return 0.
func (tracker *FlashTracker) Intensity(id string, now time.Time) (float64, FlashKind) {
	entry, exists := tracker.flashes[id]
	if !exists {
		return 0, FlashPut
	}
	elapsed := now.Sub(entry.start)
	if elapsed >= FlashDuration || elapsed < 0 {
		return 0, entry.kind
	}
	return 1 - float64(elapsed)/float64(FlashDuration), entry.kind
}

// Active reports whether any flash is still running and forgets the
// expired ones. Front ends keep their tick running while it is true.
func (tracker *FlashTracker) Active(now time.Time) bool {
	active := false
	for id, entry := range tracker.flashes {
		if now.Sub(entry.start) < FlashDuration {
			active = true
			continue
		}
		delete(tracker.flashes, id)
	}
	return active
}
