// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"testing"
	"time"

	"github.com/bureau-foundation/toolshed/lib/testutil"
)

const eventTimeout = 2 * time.Second

func sampleTools() []Tool {
	return []Tool{
		{ID: "t2", Name: "wrench", Category: "Hand tools"},
		{ID: "t1", Name: "Drill", Category: "Power tools", Status: StatusCheckedOut, Holder: "ana"},
		{ID: "t3", Name: "drill", Category: "Power tools", Status: StatusLost},
	}
}

func ids(tools []Tool) []string {
	result := make([]string, len(tools))
	for position, tool := range tools {
		result[position] = tool.ID
	}
	return result
}

func TestIndexAllOrder(t *testing.T) {
	index := NewIndex(sampleTools()...)
	got := ids(index.All())
	want := []string{"t1", "t3", "t2"}
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	for position := range want {
		if got[position] != want[position] {
			t.Fatalf("All() = %v, want %v", got, want)
		}
	}
	if tool, _ := index.Get("t2"); tool.Status != StatusAvailable {
		t.Errorf("empty status normalized to %q, want available", tool.Status)
	}
}

func TestIndexCategoriesAndCounts(t *testing.T) {
	index := NewIndex(sampleTools()...)
	categories := index.Categories()
	if len(categories) != 2 || categories[0] != "Hand tools" || categories[1] != "Power tools" {
		t.Errorf("Categories() = %v", categories)
	}
	counts := index.StatusCounts()
	if counts[StatusAvailable] != 1 || counts[StatusCheckedOut] != 1 || counts[StatusLost] != 1 {
		t.Errorf("StatusCounts() = %v", counts)
	}
}

func TestIndexEvents(t *testing.T) {
	index := NewIndex(sampleTools()...)
	events := index.Subscribe()
	startVersion := index.Version()

	index.Put(Tool{ID: "t4", Name: "Level"})
	event := testutil.Receive(t, events, eventTimeout, "put event")
	if event.Kind != EventPut || event.ToolID != "t4" || event.Tool.Status != StatusAvailable {
		t.Errorf("put event = %+v", event)
	}

	updated, ok := index.Update("t1", func(tool *Tool) {
		tool.Status = StatusAvailable
		tool.Holder = ""
		tool.ID = "renamed"
	})
	if !ok || updated.ID != "t1" || updated.Status != StatusAvailable {
		t.Fatalf("Update() = %+v, %v", updated, ok)
	}
	event = testutil.Receive(t, events, eventTimeout, "update event")
	if event.Kind != EventPut || event.ToolID != "t1" {
		t.Errorf("update event = %+v", event)
	}

	if !index.Remove("t2") {
		t.Fatal("Remove(t2) = false")
	}
	event = testutil.Receive(t, events, eventTimeout, "remove event")
	if event.Kind != EventRemove || event.Tool.Name != "wrench" {
		t.Errorf("remove event = %+v", event)
	}

	if index.Remove("missing") {
		t.Error("Remove(missing) = true")
	}
	if _, ok := index.Update("missing", func(*Tool) {}); ok {
		t.Error("Update(missing) = true")
	}
	testutil.NoReceive(t, events, 20*time.Millisecond, "event for missing tool")

	if got := index.Version(); got != startVersion+3 {
		t.Errorf("Version() = %d, want %d", got, startVersion+3)
	}
}

func TestIndexClose(t *testing.T) {
	index := NewIndex()
	events := index.Subscribe()
	index.Close()
	testutil.Closed(t, events, eventTimeout, "subscriber after Close")
	testutil.Closed(t, index.Subscribe(), eventTimeout, "subscription after Close")

	// Writes still succeed after Close.
	index.Put(Tool{ID: "t1", Name: "Drill"})
	if index.Len() != 1 {
		t.Errorf("Len() = %d, want 1", index.Len())
	}
	index.Close()
}

func TestIndexSlowSubscriberDoesNotBlock(t *testing.T) {
	index := NewIndex()
	index.Subscribe()
	for position := range subscriberBuffer * 2 {
		index.Put(Tool{ID: string(rune('a' + position%26)), Name: "tool"})
	}
	if index.Len() != 26 {
		t.Errorf("Len() = %d, want 26", index.Len())
	}
}
