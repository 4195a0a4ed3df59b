// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import "sort"

// CheckState is the visual state of the header checkbox, derived from
// how many rows in scope are selected.
type CheckState int

const (
	// Unchecked means no row in scope is selected.
	Unchecked CheckState = iota
	// Indeterminate means some but not all rows in scope are selected.
	Indeterminate
	// Checked means every row in scope is selected.
	Checked
)

func (state CheckState) String() string {
	switch state {
	case Unchecked:
		return "unchecked"
	case Indeterminate:
		return "indeterminate"
	case Checked:
		return "checked"
	default:
		return "unknown"
	}
}

// SelectScope chooses which rows "select all" acts on. A table picks
// one scope at construction; it never switches.
type SelectScope int

const (
	// ScopePage makes select-all act on the rows of the current page.
	ScopePage SelectScope = iota
	// ScopeFiltered makes select-all act on every row that passes the
	// current filter, across all pages.
	ScopeFiltered
)

func (scope SelectScope) String() string {
	switch scope {
	case ScopePage:
		return "page"
	case ScopeFiltered:
		return "filtered"
	default:
		return "unknown"
	}
}

// ParseSelectScope converts "page" or "filtered" to a SelectScope.
func ParseSelectScope(value string) (SelectScope, bool) {
	switch value {
	case "page", "":
		return ScopePage, true
	case "filtered":
		return ScopeFiltered, true
	default:
		return ScopePage, false
	}
}

// Selection is a set of selected row IDs. Every mutation calls the
// observer (if set) with the new set size before returning, so the
// bulk-action bar reacts within the same logical update.
type Selection struct {
	ids      map[string]struct{}
	observer func(size int)
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Observe installs the mutation observer, replacing any previous one.
func (selection *Selection) Observe(observer func(size int)) {
	selection.observer = observer
}

func (selection *Selection) notify() {
	if selection.observer != nil {
		selection.observer(len(selection.ids))
	}
}

// Toggle flips the membership of id. Unknown IDs are simply added.
func (selection *Selection) Toggle(id string) {
	if _, selected := selection.ids[id]; selected {
		delete(selection.ids, id)
	} else {
		selection.ids[id] = struct{}{}
	}
	selection.notify()
}

// ToggleAll selects every id in ids unless all of them are already
// selected, in which case it deselects all of them. IDs outside ids
// are untouched. An empty ids is a no-op.
func (selection *Selection) ToggleAll(ids []string) {
	if len(ids) == 0 {
		return
	}
	if selection.State(ids) == Checked {
		for _, id := range ids {
			delete(selection.ids, id)
		}
	} else {
		for _, id := range ids {
			selection.ids[id] = struct{}{}
		}
	}
	selection.notify()
}

// Clear empties the selection.
func (selection *Selection) Clear() {
	if len(selection.ids) == 0 {
		return
	}
	clear(selection.ids)
	selection.notify()
}

// Contains reports whether id is selected.
func (selection *Selection) Contains(id string) bool {
	_, selected := selection.ids[id]
	return selected
}

// Len returns the number of selected IDs.
func (selection *Selection) Len() int {
	return len(selection.ids)
}

// IDs returns the selected IDs in sorted order.
func (selection *Selection) IDs() []string {
	result := make([]string, 0, len(selection.ids))
	for id := range selection.ids {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// State derives the header checkbox state for the given scope of IDs.
func (selection *Selection) State(ids []string) CheckState {
	selected := 0
	for _, id := range ids {
		if selection.Contains(id) {
			selected++
		}
	}
	switch {
	case selected == 0:
		return Unchecked
	case selected == len(ids):
		return Checked
	default:
		return Indeterminate
	}
}

// Retain drops every selected ID for which keep returns false and
// returns how many were dropped. The observer is notified only when
// something was dropped.
func (selection *Selection) Retain(keep func(id string) bool) int {
	dropped := 0
	for id := range selection.ids {
		if !keep(id) {
			delete(selection.ids, id)
			dropped++
		}
	}
	if dropped > 0 {
		selection.notify()
	}
	return dropped
}
