// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"fmt"
	"time"

	"github.com/bureau-foundation/toolshed/lib/clock"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// item is the row type used throughout the package tests.
type item struct {
	ID       string
	Name     string
	Category string
}

func itemColumns() []Column[item] {
	return []Column[item]{
		{ID: "name", Title: "Name", SizeWeight: 3, Sortable: true, Value: func(row item) string { return row.Name }},
		{ID: "category", Title: "Category", SizeWeight: 2, Sortable: true, Hideable: true, Value: func(row item) string { return row.Category }},
		{ID: "id", Title: "ID", SizeWeight: 1, Hideable: true, Value: func(row item) string { return row.ID }},
	}
}

func itemID(row item) string { return row.ID }

// makeItems returns count rows with ids "r00", "r01", ...
func makeItems(count int) []item {
	rows := make([]item, count)
	for index := range rows {
		rows[index] = item{
			ID:       fmt.Sprintf("r%02d", index),
			Name:     fmt.Sprintf("Tool %02d", index),
			Category: "Hand tools",
		}
	}
	return rows
}

func mustColumnSet(columns []Column[item]) *ColumnSet[item] {
	set, err := NewColumnSet(columns)
	if err != nil {
		panic(err)
	}
	return set
}

// newTestTable builds a table on a fake clock. modify may adjust the
// config before construction.
func newTestTable(modify func(*Config[item])) (*Table[item], *clock.FakeClock) {
	fake := clock.Fake(epoch)
	config := Config[item]{
		Columns: itemColumns(),
		RowID:   itemID,
		Filter:  LocalFilter{SearchColumn: "name", FacetColumn: "category"},
		Clock:   fake,
	}
	if modify != nil {
		modify(&config)
	}
	table, err := New(config)
	if err != nil {
		panic(err)
	}
	return table, fake
}

func ids(rows []item) []string {
	result := make([]string, len(rows))
	for index, row := range rows {
		result[index] = row.ID
	}
	return result
}
