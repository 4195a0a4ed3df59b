// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/toolshed/lib/tui"
)

// Dropdown owners for the pickers. Row menus are owned by row ID.
const (
	facetPickerOwner  = "picker:facets"
	columnPickerOwner = "picker:columns"
)

// openRowMenu opens the action menu of the cursor row, anchored below
// the row at the right edge of the table area.
func (model *Model[R]) openRowMenu() {
	row, ok := model.cursorRow()
	if !ok {
		return
	}
	id := model.table.RowID(row)
	if !model.table.OpenRowMenu(id) {
		model.setStatus("No actions for this row", slog.LevelInfo)
		return
	}

	actions := model.table.Snapshot().MenuActions
	options := make([]tui.DropdownOption, len(actions))
	for index, action := range actions {
		options[index] = tui.DropdownOption{Label: action.Label(), Value: action.String()}
	}
	dropdown := &tui.DropdownOverlay{Options: options, Owner: id}
	x := model.areaOffset() + model.areaWidth() - dropdown.Width() - scrollbarWidth
	y := model.rowScreenY(model.cursor) + 1
	dropdown.AnchorX, dropdown.AnchorY = tui.ClampAnchor(x, y, dropdown.Width(), dropdown.Height(), model.width, model.height)

	model.dropdown = dropdown
	model.menuActions = actions
	model.focus = FocusMenu
}

func (model *Model[R]) handleMenuKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.dropdown.MoveUp()
	case key.Matches(message, model.keys.Down):
		model.dropdown.MoveDown()
	case key.Matches(message, model.keys.Confirm):
		model.confirmMenu()
	case key.Matches(message, model.keys.Back), key.Matches(message, model.keys.Quit):
		model.closeDropdown()
	}
}

// confirmMenu dispatches the highlighted action to the host.
func (model *Model[R]) confirmMenu() {
	cursor := model.dropdown.Cursor
	if _, ok := model.dropdown.Selected(); !ok || cursor >= len(model.menuActions) {
		return
	}
	action := model.menuActions[cursor]
	model.dropdown = nil
	model.menuActions = nil
	model.focus = FocusTable
	model.table.DispatchRowAction(action)
}

// closeDropdown dismisses any open menu or picker.
func (model *Model[R]) closeDropdown() {
	if model.focus == FocusMenu {
		model.table.CloseRowMenu()
	}
	model.dropdown = nil
	model.menuActions = nil
	model.focus = FocusTable
}

// syncMenu drops the dropdown when the table closed the row menu on
// its own, as when the row disappeared from the data.
func (model *Model[R]) syncMenu() {
	if model.focus != FocusMenu || model.dropdown == nil {
		return
	}
	if holder, open := model.table.OpenMenu(); !open || holder != model.dropdown.Owner {
		model.dropdown = nil
		model.menuActions = nil
		model.focus = FocusTable
	}
}

func (model *Model[R]) openFacetPicker() {
	values := model.table.FacetOptions()
	if len(values) == 0 {
		model.setStatus("No facets to filter by", slog.LevelInfo)
		return
	}
	selected := model.table.Snapshot().Filter.Facets
	options := make([]tui.DropdownOption, len(values))
	for index, value := range values {
		options[index] = tui.DropdownOption{Label: value, Value: value, Checked: selected.Has(value)}
	}
	model.openPicker(&tui.DropdownOverlay{
		Title:   "Filter",
		Options: options,
		Multi:   true,
		Owner:   facetPickerOwner,
	}, FocusFacets)
}

func (model *Model[R]) openColumnPicker() {
	columns := model.table.Columns()
	all := columns.All()
	options := make([]tui.DropdownOption, len(all))
	for index, column := range all {
		options[index] = tui.DropdownOption{
			Label:    column.Title,
			Value:    column.ID,
			Checked:  columns.IsVisible(column.ID),
			Disabled: !column.Hideable,
		}
	}
	dropdown := &tui.DropdownOverlay{
		Title:   "Columns",
		Options: options,
		Multi:   true,
		Owner:   columnPickerOwner,
	}
	// Start on the first hideable column.
	dropdown.Cursor = len(options) - 1
	dropdown.MoveDown()
	model.openPicker(dropdown, FocusColumns)
}

func (model *Model[R]) openPicker(dropdown *tui.DropdownOverlay, focus FocusRegion) {
	x := model.areaOffset()
	dropdown.AnchorX, dropdown.AnchorY = tui.ClampAnchor(x, headerLines, dropdown.Width(), dropdown.Height(), model.width, model.height)
	model.dropdown = dropdown
	model.focus = focus
}

func (model *Model[R]) handlePickerKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.dropdown.MoveUp()
	case key.Matches(message, model.keys.Down):
		model.dropdown.MoveDown()
	case key.Matches(message, model.keys.Confirm):
		model.togglePickerOption()
	case key.Matches(message, model.keys.Back), key.Matches(message, model.keys.Quit):
		model.closeDropdown()
	}
}

// togglePickerOption applies the highlighted picker option to the
// table. The picker stays open.
func (model *Model[R]) togglePickerOption() {
	option, ok := model.dropdown.Toggle()
	if !ok {
		return
	}
	switch model.focus {
	case FocusFacets:
		model.table.ToggleFacet(option.Value)
		model.cursor, model.scrollOffset = 0, 0
	case FocusColumns:
		if !model.table.SetColumnVisible(option.Value, option.Checked) {
			// Refused: undo the mark.
			model.dropdown.Toggle()
		}
	}
}
