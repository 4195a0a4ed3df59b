// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/toolshed/lib/clock"
	"github.com/bureau-foundation/toolshed/lib/config"
	"github.com/bureau-foundation/toolshed/lib/datatable"
	"github.com/bureau-foundation/toolshed/lib/inventory"
	"github.com/bureau-foundation/toolshed/lib/tableui"
)

// Bulk action IDs.
const (
	bulkCheckIn  = "check-in"
	bulkMarkLost = "mark-lost"
	bulkRemove   = "remove"
)

// commandPusher receives commands for the event loop.
type commandPusher interface {
	Push(command tea.Cmd)
}

// browser connects the table to the inventory. Its callbacks run on
// the event loop, so its fields need no locking; commands it queues
// capture what they need by value.
type browser struct {
	index  *inventory.Index
	table  *datatable.Table[inventory.Tool]
	queue  commandPusher
	logger *slog.Logger
	search *inventory.SearchService
	clock  clock.Clock
	ctx    context.Context

	// Delegated filtering state.
	delegated bool
	query     string
	facets    []string
	sequence  uint64
	cancel    context.CancelFunc
}

func (browser *browser) tableConfig(cfg *config.Config, durations config.Durations, clk clock.Clock) datatable.Config[inventory.Tool] {
	scope := datatable.ScopePage
	if cfg.Table.SelectScope == config.ScopeFiltered {
		scope = datatable.ScopeFiltered
	}

	var filter datatable.FilterMode = datatable.LocalFilter{
		SearchColumn: inventory.ColumnName,
		FacetColumn:  inventory.ColumnCategory,
		Fuzzy:        cfg.Table.Fuzzy,
	}
	if cfg.Table.Delegated {
		browser.delegated = true
		filter = datatable.DelegatedFilter{
			OnSearchChange: func(query string) {
				browser.query = query
				browser.dispatch()
			},
			OnFilterChange: func(facets []string) {
				browser.facets = facets
				browser.dispatch()
			},
			FacetColumn: inventory.ColumnCategory,
		}
	}

	return datatable.Config[inventory.Tool]{
		Columns:        inventory.Columns(),
		RowID:          inventory.ToolID,
		Filter:         filter,
		SelectScope:    scope,
		PageSize:       cfg.Table.PageSize,
		Breakpoint:     cfg.Table.Breakpoint,
		HiddenColumns:  cfg.Table.HiddenColumns,
		RowActions:     browser.rowActions(),
		BulkActions:    browser.bulkActions(),
		OnRowClick:     browser.showDetail,
		SearchDebounce: durations.SearchDebounce,
		FacetDebounce:  durations.FacetDebounce,
		ResizeDebounce: durations.ResizeDebounce,
		ExitDelay:      durations.BulkExitDelay,
		EnterDuration:  durations.BulkEnterDuration,
		Clock:          clk,
		Logger:         browser.logger,
	}
}

// dispatch starts a delegated search for the current query and
// facets, cancelling the one in flight. Results arrive as RowsMsg;
// the model drops any that a later dispatch has superseded.
func (browser *browser) dispatch() {
	if browser.cancel != nil {
		browser.cancel()
	}
	ctx, cancel := context.WithCancel(browser.ctx)
	browser.cancel = cancel
	browser.sequence++
	sequence, query, facets := browser.sequence, browser.query, browser.facets

	browser.table.SetLoading(true)
	browser.logger.Debug("delegated search", "query", query, "categories", facets, "sequence", sequence)
	browser.queue.Push(func() tea.Msg {
		tools, err := browser.search.Search(ctx, query, facets)
		if ctx.Err() != nil {
			return nil
		}
		return tableui.RowsMsg[inventory.Tool]{Sequence: sequence, Rows: tools, Err: err}
	})
}

// reload returns the rows to show after a live change. In delegated
// mode the current query is re-answered immediately, without latency.
func (browser *browser) reload() []inventory.Tool {
	if browser.delegated {
		return browser.search.Query(browser.query, browser.facets)
	}
	return browser.index.All()
}

func (browser *browser) rowActions() datatable.RowActions[inventory.Tool] {
	return datatable.RowActions[inventory.Tool]{
		OnView: browser.showDetail,
		OnEdit: browser.toggleMaintenance,
		OnDelete: func(tool inventory.Tool) {
			if browser.index.Remove(tool.ID) {
				browser.logger.Info("removed", "tool", tool.ID)
			}
		},
	}
}

func (browser *browser) bulkActions() []datatable.BulkAction[inventory.Tool] {
	return []datatable.BulkAction[inventory.Tool]{
		{ID: bulkCheckIn, Label: "Check in", Key: "1", Run: browser.checkIn},
		{ID: bulkMarkLost, Label: "Mark lost", Key: "2", Run: browser.markLost},
		{ID: bulkRemove, Label: "Remove", Key: "3", Run: browser.remove},
	}
}

func (browser *browser) showDetail(tool inventory.Tool) {
	browser.queue.Push(tableui.ShowDetail(tool.Name, detailMarkdown(tool)))
}

// toggleMaintenance moves a tool into maintenance, or back to
// available when it is already there.
func (browser *browser) toggleMaintenance(tool inventory.Tool) {
	updated, ok := browser.index.Update(tool.ID, func(tool *inventory.Tool) {
		if tool.Status == inventory.StatusMaintenance {
			tool.Status = inventory.StatusAvailable
			return
		}
		tool.Status = inventory.StatusMaintenance
		tool.Holder = ""
	})
	if ok {
		browser.logger.Info("status changed", "tool", updated.ID, "status", updated.Status.Label())
	}
}

func (browser *browser) checkIn(tools []inventory.Tool) {
	count := browser.updateAll(tools, func(tool *inventory.Tool) {
		tool.Status = inventory.StatusAvailable
		tool.Holder = ""
		tool.LastSeen = browser.clock.Now().UTC()
	})
	browser.logger.Info(fmt.Sprintf("checked in %s", plural(count, "tool")))
}

func (browser *browser) markLost(tools []inventory.Tool) {
	count := browser.updateAll(tools, func(tool *inventory.Tool) {
		tool.Status = inventory.StatusLost
	})
	browser.logger.Info(fmt.Sprintf("marked %s lost", plural(count, "tool")))
}

func (browser *browser) remove(tools []inventory.Tool) {
	count := 0
	for _, tool := range tools {
		if browser.index.Remove(tool.ID) {
			count++
		}
	}
	browser.table.ClearSelection()
	browser.logger.Info(fmt.Sprintf("removed %s", plural(count, "tool")))
}

func (browser *browser) updateAll(tools []inventory.Tool, mutate func(*inventory.Tool)) int {
	count := 0
	for _, tool := range tools {
		if _, ok := browser.index.Update(tool.ID, mutate); ok {
			count++
		}
	}
	browser.table.ClearSelection()
	return count
}

// sidebar lists the tool count per status and the categories.
func (browser *browser) sidebar() []string {
	counts := browser.index.StatusCounts()
	lines := []string{fmt.Sprintf("%d tools", browser.index.Len())}
	for _, status := range inventory.Statuses {
		lines = append(lines, fmt.Sprintf("%s %d", status.Label(), counts[status]))
	}
	if categories := browser.index.Categories(); len(categories) > 0 {
		lines = append(lines, plural(len(categories), "category"))
	}
	return lines
}

// detailMarkdown renders a tool's fields and notes for the detail pane.
func detailMarkdown(tool inventory.Tool) string {
	var builder strings.Builder
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&builder, "- **%s:** %s\n", label, value)
		}
	}
	field("ID", tool.ID)
	field("Category", tool.Category)
	field("Status", tool.Status.Label())
	field("Location", tool.Location)
	field("Holder", tool.Holder)
	field("Serial", tool.Serial)
	if !tool.LastSeen.IsZero() {
		field("Last seen", tool.LastSeen.Local().Format("2006-01-02 15:04"))
	}
	if tool.Notes != "" {
		builder.WriteString("\n## Notes\n\n")
		builder.WriteString(tool.Notes)
		builder.WriteString("\n")
	}
	return builder.String()
}

func plural(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", count, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
