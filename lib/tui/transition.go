// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "time"

// TransitionTickInterval is the re-render interval while an overlay is
// animating. 50ms gives ~20fps, smooth enough for a few rows of slide.
const TransitionTickInterval = 50 * time.Millisecond

// EaseOutCubic maps linear progress in [0, 1] to a decelerating curve.
// Inputs outside the range are clamped.
func EaseOutCubic(progress float64) float64 {
	progress = clampUnit(progress)
	inverse := 1 - progress
	return 1 - inverse*inverse*inverse
}

// EaseInCubic maps linear progress in [0, 1] to an accelerating curve.
func EaseInCubic(progress float64) float64 {
	progress = clampUnit(progress)
	return progress * progress * progress
}

// SlideRows returns how many of an overlay's rows are revealed at the
// given progress. Entering overlays ease out (fast start); exiting
// overlays ease in, so the bar lingers before it drops away. The
// result is always in [0, height].
func SlideRows(height int, progress float64, exiting bool) int {
	if height <= 0 {
		return 0
	}
	var revealed float64
	if exiting {
		revealed = 1 - EaseInCubic(progress)
	} else {
		revealed = EaseOutCubic(progress)
	}
	rows := int(revealed*float64(height) + 0.5)
	return min(height, max(0, rows))
}

func clampUnit(value float64) float64 {
	return min(1, max(0, value))
}
