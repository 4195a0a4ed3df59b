// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings of the table browser.
type KeyMap struct {
	// Cursor movement. Left/Right move the column cursor used by Sort.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection.
	ToggleRow      key.Binding
	ToggleAll      key.Binding
	ClearSelection key.Binding

	// Filtering and layout.
	Search  key.Binding
	Facets  key.Binding
	Columns key.Binding
	Sort    key.Binding

	// Paging.
	NextPage     key.Binding
	PreviousPage key.Binding

	// Rows.
	OpenMenu key.Binding // Open the row action menu.
	Activate key.Binding // Row click.

	// Overlays.
	Confirm key.Binding
	Back    key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev column"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next column"),
	),
	ToggleRow: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "select"),
	),
	ToggleAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select all"),
	),
	ClearSelection: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear selection"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Facets: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	Columns: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "columns"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "pgdown"),
		key.WithHelp("n", "next page"),
	),
	PreviousPage: key.NewBinding(
		key.WithKeys("p", "pgup"),
		key.WithHelp("p", "prev page"),
	),
	OpenMenu: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⏎", "actions"),
	),
	Activate: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter", " ", "space"),
		key.WithHelp("⏎", "choose"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.ToggleRow, keys.Search, keys.Facets, keys.OpenMenu, keys.NextPage, keys.Help, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.Left, keys.Right},
		{keys.ToggleRow, keys.ToggleAll, keys.ClearSelection},
		{keys.Search, keys.Facets, keys.Columns, keys.Sort},
		{keys.NextPage, keys.PreviousPage, keys.OpenMenu, keys.Activate},
		{keys.Back, keys.Help, keys.Quit},
	}
}
