// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/bureau-foundation/toolshed/lib/datatable"
)

// Status is the lifecycle state of a tool.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusCheckedOut  Status = "checked_out"
	StatusMaintenance Status = "maintenance"
	StatusLost        Status = "lost"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusAvailable, StatusCheckedOut, StatusMaintenance, StatusLost}

// Valid reports whether status is one of Statuses.
func (status Status) Valid() bool {
	switch status {
	case StatusAvailable, StatusCheckedOut, StatusMaintenance, StatusLost:
		return true
	}
	return false
}

// Label is the human-readable status.
func (status Status) Label() string {
	switch status {
	case StatusAvailable:
		return "Available"
	case StatusCheckedOut:
		return "Checked out"
	case StatusMaintenance:
		return "Maintenance"
	case StatusLost:
		return "Lost"
	default:
		return string(status)
	}
}

// Tool is one tracked item. The json tags serve both the JSONL format
// and CBOR snapshots.
type Tool struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Status   Status    `json:"status"`
	Location string    `json:"location,omitempty"`
	Holder   string    `json:"holder,omitempty"`
	Serial   string    `json:"serial,omitempty"`
	LastSeen time.Time `json:"last_seen,omitzero"`

	// Notes is free-form markdown shown in the detail view.
	Notes string `json:"notes,omitempty"`
}

// Validate checks the fields every record needs. An empty Status is
// accepted here and normalized to available by the loaders.
func (tool Tool) Validate() error {
	var errs []error
	if tool.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if tool.Name == "" {
		errs = append(errs, errors.New("missing name"))
	}
	if tool.Status != "" && !tool.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", tool.Status))
	}
	if tool.Status == StatusCheckedOut && tool.Holder == "" {
		errs = append(errs, errors.New("checked out without a holder"))
	}
	return errors.Join(errs...)
}

// normalize fills defaults.
func (tool Tool) normalize() Tool {
	if tool.Status == "" {
		tool.Status = StatusAvailable
	}
	return tool
}

// Equal reports whether two records are identical.
func (tool Tool) Equal(other Tool) bool {
	return tool.ID == other.ID &&
		tool.Name == other.Name &&
		tool.Category == other.Category &&
		tool.Status == other.Status &&
		tool.Location == other.Location &&
		tool.Holder == other.Holder &&
		tool.Serial == other.Serial &&
		tool.LastSeen.Equal(other.LastSeen) &&
		tool.Notes == other.Notes
}

// ToolID is the datatable row identity.
func ToolID(tool Tool) string {
	return tool.ID
}

// Column IDs.
const (
	ColumnName     = "name"
	ColumnCategory = "category"
	ColumnStatus   = "status"
	ColumnLocation = "location"
	ColumnHolder   = "holder"
	ColumnLastSeen = "last_seen"
	ColumnSerial   = "serial"
)

// lastSeenLayout renders LastSeen in cells. Sorting uses the RFC 3339
// form, which orders chronologically for UTC times.
const lastSeenLayout = "2006-01-02 15:04"

// Columns returns the table columns for tools. The name column is the
// searchable one and category the facet column.
func Columns() []datatable.Column[Tool] {
	return []datatable.Column[Tool]{
		{ID: ColumnName, Title: "Name", SizeWeight: 4, Sortable: true,
			Value: func(tool Tool) string { return tool.Name }},
		{ID: ColumnCategory, Title: "Category", SizeWeight: 3, Sortable: true, Hideable: true,
			Value: func(tool Tool) string { return tool.Category }},
		{ID: ColumnStatus, Title: "Status", SizeWeight: 2, Sortable: true, Hideable: true,
			Value:      func(tool Tool) string { return string(tool.Status) },
			RenderCell: func(tool Tool) string { return tool.Status.Label() }},
		{ID: ColumnLocation, Title: "Location", SizeWeight: 3, Sortable: true, Hideable: true,
			Value: func(tool Tool) string { return tool.Location }},
		{ID: ColumnHolder, Title: "Holder", SizeWeight: 2, Sortable: true, Hideable: true,
			Value: func(tool Tool) string { return tool.Holder }},
		{ID: ColumnLastSeen, Title: "Last seen", SizeWeight: 2, Sortable: true, Hideable: true,
			Value:      func(tool Tool) string { return formatSortable(tool.LastSeen) },
			RenderCell: func(tool Tool) string { return formatCell(tool.LastSeen) }},
		{ID: ColumnSerial, Title: "Serial", SizeWeight: 2, Hideable: true,
			Value: func(tool Tool) string { return tool.Serial }},
	}
}

// DefaultHiddenColumns start hidden in the table.
var DefaultHiddenColumns = []string{ColumnSerial}

func formatSortable(when time.Time) string {
	if when.IsZero() {
		return ""
	}
	return when.UTC().Format(time.RFC3339)
}

func formatCell(when time.Time) string {
	if when.IsZero() {
		return "never"
	}
	return when.Local().Format(lastSeenLayout)
}

// CardLines renders a tool for the compact layout.
func CardLines(tool Tool) []string {
	lines := []string{tool.Name + "  " + tool.Status.Label()}
	where := tool.Category
	if tool.Location != "" {
		where += " · " + tool.Location
	}
	lines = append(lines, where)
	if tool.Holder != "" {
		lines = append(lines, "Held by "+tool.Holder)
	}
	lines = append(lines, "Last seen "+formatCell(tool.LastSeen))
	return lines
}
