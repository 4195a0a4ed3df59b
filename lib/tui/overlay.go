// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed at (anchorX, anchorY). Truncation is ANSI-aware
// so escape sequences of the underlying view survive on both sides of
// the overlay. Overlay rows outside the view are dropped; view lines
// shorter than anchorX are padded with spaces.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	anchorX = max(0, anchorX)

	viewLines := strings.Split(view, "\n")
	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}
		viewLine := viewLines[row]
		viewWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			result.WriteString(ansi.Truncate(viewLine, anchorX, ""))
			if viewWidth < anchorX {
				result.WriteString(strings.Repeat(" ", anchorX-viewWidth))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + ansi.StringWidth(overlayLine)
		if suffixStart < viewWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}
		viewLines[row] = result.String()
	}
	return strings.Join(viewLines, "\n")
}

// CenterAnchor returns the anchor that centres an overlay of the given
// size inside a screen of the given size, clamped to the top-left.
func CenterAnchor(screenWidth, screenHeight, overlayWidth, overlayHeight int) (x, y int) {
	return max(0, (screenWidth-overlayWidth)/2), max(0, (screenHeight-overlayHeight)/2)
}

// ClampAnchor shifts an anchor left and up so an overlay of the given
// size stays on screen.
func ClampAnchor(x, y, overlayWidth, overlayHeight, screenWidth, screenHeight int) (int, int) {
	if x+overlayWidth > screenWidth {
		x = screenWidth - overlayWidth
	}
	if y+overlayHeight > screenHeight {
		y = screenHeight - overlayHeight
	}
	return max(0, x), max(0, y)
}

// PadOverlayLine pads styled content to innerWidth plus one column of
// background on each side, so every overlay line has the same width.
func PadOverlayLine(styledContent string, innerWidth int, background lipgloss.Style) string {
	rightPad := max(0, innerWidth-ansi.StringWidth(styledContent))
	return background.Render(" ") +
		styledContent +
		background.Render(strings.Repeat(" ", rightPad+1))
}
