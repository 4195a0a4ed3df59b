// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

// MenuOwner is the single "open row menu" cell of a table. A menu
// acquires ownership to open; acquiring evicts the previous holder, so
// at most one row menu is open at a time.
type MenuOwner struct {
	holder string
	held   bool
}

// Acquire makes id the open menu and returns the evicted holder, if
// any. Acquiring for the current holder is a no-op.
func (owner *MenuOwner) Acquire(id string) (evicted string, hadHolder bool) {
	if owner.held && owner.holder == id {
		return "", false
	}
	evicted, hadHolder = owner.holder, owner.held
	owner.holder, owner.held = id, true
	return evicted, hadHolder
}

// Release closes whichever menu is open.
func (owner *MenuOwner) Release() {
	owner.holder, owner.held = "", false
}

// Holder returns the row ID whose menu is open.
func (owner *MenuOwner) Holder() (string, bool) {
	return owner.holder, owner.held
}

// Holds reports whether id's menu is the open one.
func (owner *MenuOwner) Holds(id string) bool {
	return owner.held && owner.holder == id
}

// RowAction identifies one entry of the per-row menu.
type RowAction int

const (
	// ActionView opens the row's detail view.
	ActionView RowAction = iota
	// ActionEdit opens the row for editing.
	ActionEdit
	// ActionDelete requests deletion of the row.
	ActionDelete
)

func (action RowAction) String() string {
	switch action {
	case ActionView:
		return "view"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Label is the menu label for the action.
func (action RowAction) Label() string {
	switch action {
	case ActionView:
		return "View details"
	case ActionEdit:
		return "Edit"
	case ActionDelete:
		return "Delete"
	default:
		return "?"
	}
}

// RowActions are the host's handlers for the row menu. The table never
// implements the actions itself; nil handlers are left out of the menu.
type RowActions[R any] struct {
	OnView   func(row R)
	OnEdit   func(row R)
	OnDelete func(row R)
}

// Available lists the actions that have handlers, in menu order.
func (actions RowActions[R]) Available() []RowAction {
	var result []RowAction
	if actions.OnView != nil {
		result = append(result, ActionView)
	}
	if actions.OnEdit != nil {
		result = append(result, ActionEdit)
	}
	if actions.OnDelete != nil {
		result = append(result, ActionDelete)
	}
	return result
}

// handler returns the callback for action, or nil.
func (actions RowActions[R]) handler(action RowAction) func(R) {
	switch action {
	case ActionView:
		return actions.OnView
	case ActionEdit:
		return actions.OnEdit
	case ActionDelete:
		return actions.OnDelete
	default:
		return nil
	}
}

// BulkAction is a host-supplied action on the selected rows, shown in
// the bulk-action bar.
type BulkAction[R any] struct {
	// ID identifies the action for RunBulkAction.
	ID string
	// Label is shown in the bar.
	Label string
	// Key is an optional single-key shortcut for terminal front ends.
	Key string
	// Run receives the selected rows that are present in the data.
	Run func(rows []R)
}
