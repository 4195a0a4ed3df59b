// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single entry of a dropdown.
type DropdownOption struct {
	Label string // Display text.
	Value string // Value reported back to the owner on selection.

	// Checked marks the option in a multi-select dropdown.
	Checked bool

	// Disabled options are rendered faint and skipped by the cursor.
	Disabled bool
}

// DropdownOverlay is a floating menu anchored at a screen position.
// The owning model routes keys to it while it is open: up/down move
// the cursor, enter picks (or, in Multi mode, toggles) the highlighted
// option, escape dismisses.
type DropdownOverlay struct {
	Title   string // Optional heading line.
	Options []DropdownOption
	Cursor  int
	AnchorX int // Screen X of the top-left corner.
	AnchorY int // Screen Y of the top-left corner.

	// Multi renders a checkbox per option and keeps the dropdown open
	// on Toggle.
	Multi bool

	// Owner identifies what the dropdown belongs to (a row ID, a
	// picker name).
	Owner string
}

// MoveUp moves the cursor to the previous enabled option, wrapping.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.step(-1)
}

// MoveDown moves the cursor to the next enabled option, wrapping.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.step(1)
}

func (dropdown *DropdownOverlay) step(delta int) {
	count := len(dropdown.Options)
	if count == 0 {
		return
	}
	cursor := dropdown.Cursor
	for range count {
		cursor = (cursor + delta + count) % count
		if !dropdown.Options[cursor].Disabled {
			dropdown.Cursor = cursor
			return
		}
	}
}

// Selected returns the highlighted option. ok is false when the
// dropdown is empty or the highlighted option is disabled.
func (dropdown *DropdownOverlay) Selected() (option DropdownOption, ok bool) {
	if dropdown.Cursor < 0 || dropdown.Cursor >= len(dropdown.Options) {
		return DropdownOption{}, false
	}
	option = dropdown.Options[dropdown.Cursor]
	return option, !option.Disabled
}

// Toggle flips the Checked mark of the highlighted option and returns
// it. Only meaningful for Multi dropdowns.
func (dropdown *DropdownOverlay) Toggle() (DropdownOption, bool) {
	option, ok := dropdown.Selected()
	if !ok {
		return option, false
	}
	option.Checked = !option.Checked
	dropdown.Options[dropdown.Cursor] = option
	return option, true
}

// CheckedValues returns the values of every checked option, in option
// order.
func (dropdown *DropdownOverlay) CheckedValues() []string {
	var values []string
	for _, option := range dropdown.Options {
		if option.Checked {
			values = append(values, option.Value)
		}
	}
	return values
}

// headerLines is the number of rendered lines above the first option.
func (dropdown *DropdownOverlay) headerLines() int {
	if dropdown.Title != "" {
		return 1
	}
	return 0
}

// Height returns the number of rendered lines.
func (dropdown *DropdownOverlay) Height() int {
	return dropdown.headerLines() + len(dropdown.Options)
}

// Width returns the visible width of every rendered line, for layout
// and mouse hit-testing.
func (dropdown *DropdownOverlay) Width() int {
	widest := ansi.StringWidth(dropdown.Title)
	for _, option := range dropdown.Options {
		widest = max(widest, ansi.StringWidth(dropdown.prefix(option, false))+ansi.StringWidth(option.Label))
	}
	// One column of padding on each side.
	return widest + 2
}

// Contains reports whether screen coordinate (x, y) falls inside the
// dropdown.
func (dropdown *DropdownOverlay) Contains(x, y int) bool {
	if y < dropdown.AnchorY || y >= dropdown.AnchorY+dropdown.Height() {
		return false
	}
	return x >= dropdown.AnchorX && x < dropdown.AnchorX+dropdown.Width()
}

// OptionAtY returns the option index rendered at screen row y, or -1.
func (dropdown *DropdownOverlay) OptionAtY(y int) int {
	index := y - dropdown.AnchorY - dropdown.headerLines()
	if index < 0 || index >= len(dropdown.Options) {
		return -1
	}
	return index
}

func (dropdown *DropdownOverlay) prefix(option DropdownOption, highlighted bool) string {
	marker := "  "
	if highlighted {
		marker = "> "
	}
	if !dropdown.Multi {
		return marker
	}
	if option.Checked {
		return marker + "[x] "
	}
	return marker + "[ ] "
}

// Render produces the dropdown lines for SpliceOverlay. Every line has
// the same visible width and a solid background.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	width := dropdown.Width()
	innerWidth := width - 2

	background := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	highlighted := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	disabled := background.Foreground(theme.FaintText)
	title := background.Foreground(theme.HeaderForeground).Bold(true)

	lines := make([]string, 0, dropdown.Height())
	if dropdown.Title != "" {
		lines = append(lines, PadOverlayLine(title.Render(dropdown.Title), innerWidth, background))
	}
	for index, option := range dropdown.Options {
		current := index == dropdown.Cursor
		content := dropdown.prefix(option, current) + option.Label
		style := background
		switch {
		case option.Disabled:
			style = disabled
		case current:
			style = highlighted
		}
		padding := strings.Repeat(" ", max(0, innerWidth-ansi.StringWidth(content)))
		lines = append(lines, style.Render(" "+content+padding+" "))
	}
	return lines
}
