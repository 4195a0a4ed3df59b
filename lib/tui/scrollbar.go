// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Scrollbar describes a vertical viewport over a list of items.
type Scrollbar struct {
	Height  int // Rendered rows.
	Total   int // Items in the list.
	Visible int // Items that fit in the viewport.
	Offset  int // Index of the first visible item.
}

// Thumb returns the first row and the row count of the thumb. When
// everything fits, the thumb spans the full height.
func (bar Scrollbar) Thumb() (start, size int) {
	if bar.Height <= 0 {
		return 0, 0
	}
	if bar.Total <= bar.Visible || bar.Total <= 0 {
		return 0, bar.Height
	}
	size = max(1, bar.Height*bar.Visible/bar.Total)
	scrollable := bar.Total - bar.Visible
	track := bar.Height - size
	if track > 0 {
		start = min(track, max(0, bar.Offset)*track/scrollable)
	}
	return start, size
}

// Render returns one string per row: a heavy thumb glyph over a light
// track. The thumb uses the accent colour when focused.
func (bar Scrollbar) Render(theme Theme, focused bool) []string {
	if bar.Height <= 0 {
		return nil
	}
	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.AccentColor
	}
	track := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")
	thumb := lipgloss.NewStyle().Foreground(thumbColor).Render("┃")

	start, size := bar.Thumb()
	lines := make([]string, bar.Height)
	for row := range lines {
		if row >= start && row < start+size {
			lines[row] = thumb
		} else {
			lines[row] = track
		}
	}
	return lines
}
