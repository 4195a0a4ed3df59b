// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"slices"
	"testing"
)

func TestSortStateCycle(t *testing.T) {
	state := SortState{}
	state = state.next("name")
	if state != (SortState{ColumnID: "name"}) {
		t.Fatalf("first toggle = %+v", state)
	}
	state = state.next("name")
	if state != (SortState{ColumnID: "name", Descending: true}) {
		t.Fatalf("second toggle = %+v", state)
	}
	state = state.next("name")
	if state != (SortState{}) {
		t.Fatalf("third toggle = %+v", state)
	}
	state = SortState{ColumnID: "name", Descending: true}.next("category")
	if state != (SortState{ColumnID: "category"}) {
		t.Fatalf("other column = %+v", state)
	}
}

func TestSortRowsStableCaseInsensitive(t *testing.T) {
	rows := []item{
		{ID: "1", Name: "saw"},
		{ID: "2", Name: "Drill"},
		{ID: "3", Name: "Saw"},
		{ID: "4", Name: "anvil"},
	}
	column := itemColumns()[0]

	if got := ids(sortRows(rows, column, false)); !slices.Equal(got, []string{"4", "2", "1", "3"}) {
		t.Errorf("ascending = %v", got)
	}
	if got := ids(sortRows(rows, column, true)); !slices.Equal(got, []string{"1", "3", "2", "4"}) {
		t.Errorf("descending = %v", got)
	}
	if rows[0].ID != "1" {
		t.Error("sortRows must not reorder its input")
	}
}
