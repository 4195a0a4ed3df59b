// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"slices"
	"testing"
)

func TestNewColumnSetValidation(t *testing.T) {
	tests := []struct {
		name    string
		columns []Column[item]
	}{
		{"empty", nil},
		{"empty id", []Column[item]{{Title: "Name"}}},
		{"duplicate", []Column[item]{{ID: "name"}, {ID: "name"}}},
	}
	for _, test := range tests {
		if _, err := NewColumnSet(test.columns); err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

func TestColumnSetVisibility(t *testing.T) {
	set := mustColumnSet(itemColumns())

	if set.SetVisible("name", false) {
		t.Error("name is not hideable")
	}
	if set.SetVisible("missing", false) {
		t.Error("unknown column should be rejected")
	}
	if !set.SetVisible("category", false) {
		t.Fatal("category should be hideable")
	}
	visible := []string{}
	for _, column := range set.Visible() {
		visible = append(visible, column.ID)
	}
	if !slices.Equal(visible, []string{"name", "id"}) {
		t.Fatalf("visible = %v", visible)
	}
	if set.IsVisible("category") {
		t.Error("category reported visible")
	}
	if len(set.All()) != 3 {
		t.Error("All should include hidden columns")
	}
	set.SetVisible("category", true)
	if !set.IsVisible("category") {
		t.Error("category should be visible again")
	}
}

func TestColumnSetKeepsOneVisible(t *testing.T) {
	set := mustColumnSet([]Column[item]{
		{ID: "a", Hideable: true},
		{ID: "b", Hideable: true},
	})
	if !set.SetVisible("a", false) {
		t.Fatal("hiding a should succeed")
	}
	if set.SetVisible("b", false) {
		t.Fatal("hiding the last visible column should fail")
	}
}

func TestColumnSetWidths(t *testing.T) {
	set := mustColumnSet(itemColumns())
	if got := set.Widths(60); !slices.Equal(got, []int{30, 20, 10}) {
		t.Errorf("Widths(60) = %v, want [30 20 10]", got)
	}
	got := set.Widths(61)
	sum := 0
	for _, width := range got {
		sum += width
	}
	if sum != 61 {
		t.Errorf("Widths(61) = %v sums to %d", got, sum)
	}
	if got := set.Widths(0); !slices.Equal(got, []int{0, 0, 0}) {
		t.Errorf("Widths(0) = %v", got)
	}
}

func TestColumnCellAndHeader(t *testing.T) {
	column := Column[item]{
		ID:    "name",
		Title: "Name",
		Value: func(row item) string { return row.Name },
	}
	row := item{Name: "Level"}
	if column.Cell(row) != "Level" || column.Header() != "Name" {
		t.Fatalf("defaults: cell %q header %q", column.Cell(row), column.Header())
	}
	column.RenderCell = func(row item) string { return "[" + row.Name + "]" }
	column.RenderHeader = func() string { return "NAME" }
	if column.Cell(row) != "[Level]" || column.Header() != "NAME" {
		t.Fatalf("custom: cell %q header %q", column.Cell(row), column.Header())
	}
}
