// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/toolshed/lib/clock"
	"github.com/bureau-foundation/toolshed/lib/datatable"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type tool struct {
	ID       string
	Name     string
	Category string
}

func toolColumns() []datatable.Column[tool] {
	return []datatable.Column[tool]{
		{ID: "name", Title: "Name", SizeWeight: 3, Sortable: true, Value: func(row tool) string { return row.Name }},
		{ID: "category", Title: "Category", SizeWeight: 2, Sortable: true, Hideable: true, Value: func(row tool) string { return row.Category }},
		{ID: "id", Title: "ID", SizeWeight: 1, Hideable: true, Value: func(row tool) string { return row.ID }},
	}
}

// makeTools returns count rows; odd rows are "Power tools".
func makeTools(count int) []tool {
	rows := make([]tool, count)
	for index := range rows {
		category := "Hand tools"
		if index%2 == 1 {
			category = "Power tools"
		}
		rows[index] = tool{ID: fmt.Sprintf("t%02d", index), Name: fmt.Sprintf("Tool %02d", index), Category: category}
	}
	return rows
}

type fixture struct {
	model Model[tool]
	table *datatable.Table[tool]
	clock *clock.FakeClock
}

// newFixture builds a sized model over rows on a fake clock. The table
// switches to cards below 100 columns.
func newFixture(t *testing.T, width int, rows []tool, modify func(*datatable.Config[tool], *Options[tool])) *fixture {
	t.Helper()
	fake := clock.Fake(epoch)
	config := datatable.Config[tool]{
		Columns:    toolColumns(),
		RowID:      func(row tool) string { return row.ID },
		Filter:     datatable.LocalFilter{SearchColumn: "name", FacetColumn: "category"},
		Breakpoint: DefaultDataColumns,
		Clock:      fake,
	}
	options := Options[tool]{Title: "Tools", Clock: fake}
	if modify != nil {
		modify(&config, &options)
	}
	table, err := datatable.New(config)
	if err != nil {
		t.Fatalf("datatable.New: %v", err)
	}
	t.Cleanup(table.Close)
	table.SetRows(rows)
	options.Table = table

	f := &fixture{model: NewModel(options), table: table, clock: fake}
	f.send(tea.WindowSizeMsg{Width: width, Height: 24})
	return f
}

func (f *fixture) send(message tea.Msg) tea.Cmd {
	next, command := f.model.Update(message)
	f.model = next.(Model[tool])
	return command
}

// press sends each key in turn. "enter", "esc" and " " are special;
// anything else is typed as runes.
func (f *fixture) press(keys ...string) {
	for _, name := range keys {
		switch name {
		case "enter":
			f.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			f.send(tea.KeyMsg{Type: tea.KeyEsc})
		case " ":
			f.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		default:
			f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)})
		}
	}
}

func (f *fixture) click(x, y int) {
	f.send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

func (f *fixture) view() string {
	return ansi.Strip(f.model.View())
}

func requireContains(t *testing.T, view, want string) {
	t.Helper()
	if !strings.Contains(view, want) {
		t.Fatalf("view does not contain %q:\n%s", want, view)
	}
}

func requireNotContains(t *testing.T, view, unwanted string) {
	t.Helper()
	if strings.Contains(view, unwanted) {
		t.Fatalf("view unexpectedly contains %q:\n%s", unwanted, view)
	}
}

func rowIDs(rows []tool) []string {
	result := make([]string, len(rows))
	for index, row := range rows {
		result[index] = row.ID
	}
	return result
}
