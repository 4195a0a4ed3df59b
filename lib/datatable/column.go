// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import "fmt"

// Column describes one column of a table over rows of type R. Columns
// are immutable for the lifetime of a table; visibility is the only
// attribute that changes, and only for Hideable columns.
type Column[R any] struct {
	// ID uniquely identifies the column within a table.
	ID string

	// Title is the header label.
	Title string

	// SizeWeight is the column's share of the available width relative
	// to the other visible columns. Values <= 0 count as 1.
	SizeWeight int

	// Sortable allows ToggleSort on this column.
	Sortable bool

	// Hideable allows SetColumnVisible to hide this column.
	Hideable bool

	// Value extracts the column's plain-text value from a row. Used for
	// filtering, sorting, and as the default cell rendering.
	Value func(row R) string

	// RenderCell renders the cell content. Nil falls back to Value.
	RenderCell func(row R) string

	// RenderHeader renders the header content. Nil falls back to Title.
	RenderHeader func() string
}

// Cell returns the rendered cell content for a row.
func (column Column[R]) Cell(row R) string {
	if column.RenderCell != nil {
		return column.RenderCell(row)
	}
	if column.Value != nil {
		return column.Value(row)
	}
	return ""
}

// Header returns the rendered header content.
func (column Column[R]) Header() string {
	if column.RenderHeader != nil {
		return column.RenderHeader()
	}
	return column.Title
}

// weight returns the effective size weight.
func (column Column[R]) weight() int {
	if column.SizeWeight <= 0 {
		return 1
	}
	return column.SizeWeight
}

// ColumnSet is the ordered column definition of a table plus the
// visibility of each column.
type ColumnSet[R any] struct {
	columns []Column[R]
	index   map[string]int
	hidden  map[string]bool
}

// NewColumnSet validates the column definitions and returns a set with
// every column visible. Column IDs must be non-empty and unique.
func NewColumnSet[R any](columns []Column[R]) (*ColumnSet[R], error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("datatable: at least one column is required")
	}
	set := &ColumnSet[R]{
		columns: make([]Column[R], len(columns)),
		index:   make(map[string]int, len(columns)),
		hidden:  make(map[string]bool),
	}
	copy(set.columns, columns)
	for position, column := range set.columns {
		if column.ID == "" {
			return nil, fmt.Errorf("datatable: column %d has an empty ID", position)
		}
		if _, exists := set.index[column.ID]; exists {
			return nil, fmt.Errorf("datatable: duplicate column ID %q", column.ID)
		}
		set.index[column.ID] = position
	}
	return set, nil
}

// Lookup returns the column with the given ID.
func (set *ColumnSet[R]) Lookup(id string) (Column[R], bool) {
	position, exists := set.index[id]
	if !exists {
		return Column[R]{}, false
	}
	return set.columns[position], true
}

// All returns every column in definition order, hidden or not.
func (set *ColumnSet[R]) All() []Column[R] {
	result := make([]Column[R], len(set.columns))
	copy(result, set.columns)
	return result
}

// Visible returns the visible columns in definition order.
func (set *ColumnSet[R]) Visible() []Column[R] {
	var result []Column[R]
	for _, column := range set.columns {
		if !set.hidden[column.ID] {
			result = append(result, column)
		}
	}
	return result
}

// IsVisible reports whether the column is currently shown. Unknown
// columns are reported as not visible.
func (set *ColumnSet[R]) IsVisible(id string) bool {
	if _, exists := set.index[id]; !exists {
		return false
	}
	return !set.hidden[id]
}

// SetVisible shows or hides a column. Returns false (and changes
// nothing) for unknown columns, for non-hideable columns, and when
// hiding would leave no visible column.
func (set *ColumnSet[R]) SetVisible(id string, visible bool) bool {
	column, exists := set.Lookup(id)
	if !exists || !column.Hideable {
		return false
	}
	if visible {
		delete(set.hidden, id)
		return true
	}
	if !set.hidden[id] && len(set.Visible()) == 1 {
		return false
	}
	set.hidden[id] = true
	return true
}

// Widths distributes total across the visible columns in proportion to
// their size weights. Rounding remainder goes to the last column so the
// widths always sum to total (when total >= 0).
func (set *ColumnSet[R]) Widths(total int) []int {
	visible := set.Visible()
	if len(visible) == 0 || total <= 0 {
		return make([]int, len(visible))
	}

	weightSum := 0
	for _, column := range visible {
		weightSum += column.weight()
	}

	widths := make([]int, len(visible))
	assigned := 0
	for position, column := range visible {
		widths[position] = total * column.weight() / weightSum
		assigned += widths[position]
	}
	widths[len(widths)-1] += total - assigned
	return widths
}
