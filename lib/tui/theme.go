// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour palette of toolshed's terminal UIs. All
// colours use lipgloss ANSI 256-colour codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Cursor row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Checked rows and the bulk-action bar accent.
	CheckedForeground lipgloss.Color
	AccentColor       lipgloss.Color

	// StatusColors maps a record status value to its colour. Unknown
	// statuses render in FaintText.
	StatusColors map[string]lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	WarningText      lipgloss.Color
	ErrorText        lipgloss.Color

	// Floating surfaces: menus, pickers, the bulk-action bar.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color

	// Change highlighting for records updated or removed by a live
	// data source.
	FlashPut    lipgloss.Color
	FlashRemove lipgloss.Color
}

// StatusColor returns the colour for a status value.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	if color, exists := theme.StatusColors[status]; exists {
		return color
	}
	return theme.FaintText
}

// DefaultTheme is the built-in dark-terminal colour scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	CheckedForeground: lipgloss.Color("114"),
	AccentColor:       lipgloss.Color("75"),

	StatusColors: map[string]lipgloss.Color{
		"available":   lipgloss.Color("114"), // green
		"checked_out": lipgloss.Color("220"), // amber
		"maintenance": lipgloss.Color("141"), // light purple
		"lost":        lipgloss.Color("196"), // red
	},

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	WarningText:      lipgloss.Color("214"),
	ErrorText:        lipgloss.Color("196"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),

	FlashPut:    lipgloss.Color("58"), // dark amber tint
	FlashRemove: lipgloss.Color("52"), // dark red tint
}
