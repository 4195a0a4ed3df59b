// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"slices"
	"strings"
)

// SortState names the sort column and direction. An empty ColumnID
// means rows keep the order the host supplied.
type SortState struct {
	ColumnID   string
	Descending bool
}

// next cycles ascending -> descending -> unsorted for columnID, or
// starts ascending when a different column was sorted.
func (state SortState) next(columnID string) SortState {
	switch {
	case state.ColumnID != columnID:
		return SortState{ColumnID: columnID}
	case !state.Descending:
		return SortState{ColumnID: columnID, Descending: true}
	default:
		return SortState{}
	}
}

// sortRows returns a stably sorted copy of rows. Values compare
// case-insensitively; ties keep input order.
func sortRows[R any](rows []R, column Column[R], descending bool) []R {
	sorted := slices.Clone(rows)
	if column.Value == nil {
		return sorted
	}
	slices.SortStableFunc(sorted, func(left, right R) int {
		result := strings.Compare(strings.ToLower(column.Value(left)), strings.ToLower(column.Value(right)))
		if descending {
			return -result
		}
		return result
	})
	return sorted
}
