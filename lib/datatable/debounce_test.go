// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"testing"
	"time"

	"github.com/bureau-foundation/toolshed/lib/clock"
)

func TestDebouncerRunsLastActionOnce(t *testing.T) {
	fake := clock.Fake(epoch)
	debouncer := NewDebouncer(fake, 100*time.Millisecond)

	var ran []string
	for _, value := range []string{"a", "b", "c"} {
		debouncer.Trigger(func() { ran = append(ran, value) })
		fake.Advance(50 * time.Millisecond)
	}
	if len(ran) != 0 {
		t.Fatalf("action ran inside the window: %v", ran)
	}
	fake.Advance(50 * time.Millisecond)
	if len(ran) != 1 || ran[0] != "c" {
		t.Fatalf("ran = %v, want [c]", ran)
	}
	if fake.PendingCount() != 0 {
		t.Errorf("PendingCount = %d, want 0", fake.PendingCount())
	}
}

func TestDebouncerZeroWindowRunsImmediately(t *testing.T) {
	debouncer := NewDebouncer(clock.Fake(epoch), 0)
	ran := false
	debouncer.Trigger(func() { ran = true })
	if !ran {
		t.Fatal("zero-window Trigger should run synchronously")
	}
	if debouncer.Pending() {
		t.Error("nothing should be pending")
	}
}

func TestDebouncerFlush(t *testing.T) {
	fake := clock.Fake(epoch)
	debouncer := NewDebouncer(fake, time.Second)

	if debouncer.Flush() {
		t.Fatal("Flush with nothing pending should return false")
	}
	runs := 0
	debouncer.Trigger(func() { runs++ })
	if !debouncer.Flush() {
		t.Fatal("Flush should report the pending action")
	}
	fake.Advance(2 * time.Second)
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (flushed timer must not fire again)", runs)
	}
}

func TestDebouncerCancelAndClose(t *testing.T) {
	fake := clock.Fake(epoch)
	debouncer := NewDebouncer(fake, time.Second)

	runs := 0
	debouncer.Trigger(func() { runs++ })
	debouncer.Cancel()
	fake.Advance(2 * time.Second)
	if runs != 0 {
		t.Fatalf("cancelled action ran")
	}

	debouncer.Close()
	debouncer.Trigger(func() { runs++ })
	fake.Advance(2 * time.Second)
	if runs != 0 {
		t.Fatalf("Trigger after Close ran")
	}
	if fake.PendingCount() != 0 {
		t.Errorf("PendingCount = %d, want 0", fake.PendingCount())
	}
}
