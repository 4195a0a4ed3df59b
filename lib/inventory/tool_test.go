// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		tool    Tool
		wantErr []string
	}{
		{"valid", Tool{ID: "t1", Name: "Drill"}, nil},
		{"missing id and name", Tool{}, []string{"missing id", "missing name"}},
		{"unknown status", Tool{ID: "t1", Name: "Drill", Status: "borrowed"}, []string{`unknown status "borrowed"`}},
		{"checked out without holder", Tool{ID: "t1", Name: "Drill", Status: StatusCheckedOut}, []string{"without a holder"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.tool.Validate()
			if len(test.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, want := range test.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %q, want it to mention %q", err, want)
				}
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusCheckedOut.Label(); got != "Checked out" {
		t.Errorf("Label() = %q, want %q", got, "Checked out")
	}
	if Status("borrowed").Valid() {
		t.Error("unknown status reported valid")
	}
	for _, status := range Statuses {
		if !status.Valid() {
			t.Errorf("%q not valid", status)
		}
	}
}

func TestColumns(t *testing.T) {
	columns := Columns()
	byID := make(map[string]int)
	for position, column := range columns {
		byID[column.ID] = position
	}
	for _, id := range []string{ColumnName, ColumnCategory, ColumnStatus, ColumnLocation, ColumnHolder, ColumnLastSeen, ColumnSerial} {
		if _, ok := byID[id]; !ok {
			t.Errorf("missing column %q", id)
		}
	}

	tool := Tool{ID: "t1", Name: "Drill", Status: StatusCheckedOut, Holder: "ana"}
	status := columns[byID[ColumnStatus]]
	if got := status.Cell(tool); got != "Checked out" {
		t.Errorf("status cell = %q", got)
	}
	lastSeen := columns[byID[ColumnLastSeen]]
	if got := lastSeen.Cell(tool); got != "never" {
		t.Errorf("zero last_seen cell = %q, want never", got)
	}
	tool.LastSeen = time.Date(2026, 10, 1, 17, 40, 0, 0, time.UTC)
	if got, want := lastSeen.Cell(tool), tool.LastSeen.Local().Format("2006-01-02 15:04"); got != want {
		t.Errorf("last_seen cell = %q, want %q", got, want)
	}
}

func TestCardLines(t *testing.T) {
	lines := CardLines(Tool{ID: "t1", Name: "Drill", Category: "Power tools", Status: StatusCheckedOut, Holder: "ana", Location: "Bench 2"})
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Drill", "Power tools", "Checked out", "ana", "Bench 2"} {
		if !strings.Contains(joined, want) {
			t.Errorf("card lines %q missing %q", lines, want)
		}
	}
}
