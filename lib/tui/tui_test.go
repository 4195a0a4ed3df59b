// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testDropdown() *DropdownOverlay {
	return &DropdownOverlay{
		Options: []DropdownOption{
			{Label: "View details", Value: "view"},
			{Label: "Edit", Value: "edit", Disabled: true},
			{Label: "Delete", Value: "delete"},
		},
		AnchorX: 4,
		AnchorY: 2,
	}
}

func TestDropdownCursorSkipsDisabled(t *testing.T) {
	dropdown := testDropdown()
	dropdown.MoveDown()
	if dropdown.Cursor != 2 {
		t.Fatalf("MoveDown landed on %d, want 2", dropdown.Cursor)
	}
	dropdown.MoveDown()
	if dropdown.Cursor != 0 {
		t.Fatalf("MoveDown should wrap to 0, got %d", dropdown.Cursor)
	}
	dropdown.MoveUp()
	if dropdown.Cursor != 2 {
		t.Fatalf("MoveUp should wrap to 2, got %d", dropdown.Cursor)
	}
	option, ok := dropdown.Selected()
	if !ok || option.Value != "delete" {
		t.Fatalf("Selected = %+v, %v", option, ok)
	}
}

func TestDropdownHitTesting(t *testing.T) {
	dropdown := testDropdown()
	dropdown.Title = "Row"
	if !dropdown.Contains(4, 2) || dropdown.Contains(3, 2) || dropdown.Contains(4, 6) {
		t.Error("Contains bounds wrong")
	}
	if got := dropdown.OptionAtY(2); got != -1 {
		t.Errorf("title row OptionAtY = %d, want -1", got)
	}
	if got := dropdown.OptionAtY(3); got != 0 {
		t.Errorf("OptionAtY(3) = %d, want 0", got)
	}
}

func TestDropdownRenderUniformWidth(t *testing.T) {
	dropdown := testDropdown()
	dropdown.Title = "Actions"
	lines := dropdown.Render(DefaultTheme)
	if len(lines) != dropdown.Height() {
		t.Fatalf("rendered %d lines, want %d", len(lines), dropdown.Height())
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width != dropdown.Width() {
			t.Errorf("line %d width %d, want %d", index, width, dropdown.Width())
		}
	}
	if !strings.Contains(ansi.Strip(lines[1]), "> View details") {
		t.Errorf("cursor line = %q", ansi.Strip(lines[1]))
	}
}

func TestDropdownMultiToggle(t *testing.T) {
	dropdown := &DropdownOverlay{
		Multi: true,
		Options: []DropdownOption{
			{Label: "Hand tools", Value: "Hand tools"},
			{Label: "Power tools", Value: "Power tools", Checked: true},
		},
	}
	dropdown.Toggle()
	if got := dropdown.CheckedValues(); !slices.Equal(got, []string{"Hand tools", "Power tools"}) {
		t.Fatalf("CheckedValues = %v", got)
	}
	lines := dropdown.Render(DefaultTheme)
	if !strings.Contains(ansi.Strip(lines[0]), "[x] Hand tools") {
		t.Errorf("multi line = %q", ansi.Strip(lines[0]))
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "0123456789\nabcdefghij\nshort"
	got := SpliceOverlay(view, []string{"XX", "YY", "ZZ", "out of range"}, 3, 0)
	lines := strings.Split(ansi.Strip(got), "\n")
	want := []string{"012XX56789", "abcYYfghij", "shoZZ"}
	if !slices.Equal(lines, want) {
		t.Fatalf("SpliceOverlay = %q, want %q", lines, want)
	}

	padded := ansi.Strip(SpliceOverlay("ab", []string{"Q"}, 4, 0))
	if padded != "ab  Q" {
		t.Errorf("short line splice = %q, want %q", padded, "ab  Q")
	}
}

func TestAnchors(t *testing.T) {
	if x, y := CenterAnchor(80, 24, 20, 4); x != 30 || y != 10 {
		t.Errorf("CenterAnchor = %d, %d", x, y)
	}
	if x, y := ClampAnchor(70, 22, 20, 4, 80, 24); x != 60 || y != 20 {
		t.Errorf("ClampAnchor = %d, %d", x, y)
	}
	if x, y := ClampAnchor(0, 0, 100, 40, 80, 24); x != 0 || y != 0 {
		t.Errorf("oversized ClampAnchor = %d, %d", x, y)
	}
}

func TestSlideRows(t *testing.T) {
	if SlideRows(3, 0, false) != 0 || SlideRows(3, 1, false) != 3 {
		t.Error("entering endpoints wrong")
	}
	if SlideRows(3, 0, true) != 3 || SlideRows(3, 1, true) != 0 {
		t.Error("exiting endpoints wrong")
	}
	if SlideRows(3, 0.5, false) < SlideRows(3, 0.5, true) {
		t.Error("entering should be ahead of exiting at the midpoint")
	}
	if EaseOutCubic(2) != 1 || EaseInCubic(-1) != 0 {
		t.Error("easing should clamp")
	}
}

func TestFlashTracker(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracker := NewFlashTracker()
	tracker.Mark("t1", FlashRemove, now)

	intensity, kind := tracker.Intensity("t1", now.Add(FlashDuration/2))
	if intensity != 0.5 || kind != FlashRemove {
		t.Fatalf("Intensity = %v, %v", intensity, kind)
	}
	if !tracker.Active(now.Add(time.Second)) {
		t.Fatal("flash should be active")
	}
	if tracker.Active(now.Add(FlashDuration)) {
		t.Fatal("flash should have expired")
	}
	if intensity, _ := tracker.Intensity("t1", now); intensity != 0 {
		t.Error("expired flash should have been forgotten")
	}
}

func TestScrollbarThumb(t *testing.T) {
	tests := []struct {
		bar        Scrollbar
		start, end int
	}{
		{Scrollbar{Height: 10, Total: 5, Visible: 10}, 0, 10},
		{Scrollbar{Height: 10, Total: 100, Visible: 10, Offset: 0}, 0, 1},
		{Scrollbar{Height: 10, Total: 100, Visible: 10, Offset: 90}, 9, 10},
		{Scrollbar{Height: 10, Total: 20, Visible: 10, Offset: 5}, 2, 7},
	}
	for _, test := range tests {
		start, size := test.bar.Thumb()
		if start != test.start || start+size != test.end {
			t.Errorf("%+v: thumb [%d, %d), want [%d, %d)", test.bar, start, start+size, test.start, test.end)
		}
	}
	if lines := (Scrollbar{Height: 3, Total: 1, Visible: 3}).Render(DefaultTheme, true); len(lines) != 3 {
		t.Errorf("Render rows = %d", len(lines))
	}
}

func TestStatusColor(t *testing.T) {
	if DefaultTheme.StatusColor("lost") != lipgloss.Color("196") {
		t.Error("lost should be red")
	}
	if DefaultTheme.StatusColor("unknown") != DefaultTheme.FaintText {
		t.Error("unknown status should be faint")
	}
}
