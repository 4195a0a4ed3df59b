// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"slices"
	"testing"
	"time"

	"github.com/bureau-foundation/toolshed/lib/clock"
)

// fakeViewport is a ViewportSource driven by the test.
type fakeViewport struct {
	observers map[int]func(int)
	next      int
}

func (viewport *fakeViewport) Subscribe(observer func(width int)) func() {
	if viewport.observers == nil {
		viewport.observers = make(map[int]func(int))
	}
	id := viewport.next
	viewport.next++
	viewport.observers[id] = observer
	return func() { delete(viewport.observers, id) }
}

func (viewport *fakeViewport) resize(width int) {
	for _, observer := range viewport.observers {
		observer(width)
	}
}

func TestResponsiveBreakpoint(t *testing.T) {
	responsive := NewResponsive(0, clock.Fake(epoch), 0, nil)
	if responsive.Breakpoint() != DataBreakpoint {
		t.Fatalf("Breakpoint = %d, want %d", responsive.Breakpoint(), DataBreakpoint)
	}
	if responsive.Compact() {
		t.Error("unknown width should be tabular")
	}

	tests := []struct {
		width int
		want  bool
	}{
		{1200, false},
		{768, false},
		{767, true},
		{320, true},
		{0, false},
	}
	for _, test := range tests {
		responsive.Observe(test.width)
		if got := responsive.Compact(); got != test.want {
			t.Errorf("width %d: Compact = %v, want %v", test.width, got, test.want)
		}
	}
}

func TestResponsiveOnChange(t *testing.T) {
	var changes []bool
	responsive := NewResponsive(NavigationBreakpoint, clock.Fake(epoch), 0, func(compact bool) {
		changes = append(changes, compact)
	})
	for _, width := range []int{1280, 900, 800, 1100} {
		responsive.Observe(width)
	}
	if want := []bool{true, false}; !slices.Equal(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
}

func TestResponsiveDebounce(t *testing.T) {
	fake := clock.Fake(epoch)
	evaluations := 0
	responsive := NewResponsive(768, fake, 50*time.Millisecond, func(bool) { evaluations++ })

	for _, width := range []int{1000, 700, 900, 500} {
		responsive.Observe(width)
		fake.Advance(10 * time.Millisecond)
	}
	if responsive.Width() != 0 {
		t.Fatalf("width evaluated during the burst")
	}
	fake.Advance(50 * time.Millisecond)
	if responsive.Width() != 500 || !responsive.Compact() || evaluations != 1 {
		t.Fatalf("width = %d compact = %v evaluations = %d", responsive.Width(), responsive.Compact(), evaluations)
	}
}

func TestResponsiveAttachAndClose(t *testing.T) {
	viewport := &fakeViewport{}
	responsive := NewResponsive(768, clock.Fake(epoch), 0, nil)

	responsive.Attach(viewport)
	viewport.resize(400)
	if !responsive.Compact() {
		t.Fatal("attached viewport resize should switch to compact")
	}

	responsive.Attach(viewport)
	if len(viewport.observers) != 1 {
		t.Fatalf("re-attaching left %d subscriptions, want 1", len(viewport.observers))
	}

	responsive.Close()
	if len(viewport.observers) != 0 {
		t.Fatalf("Close left %d subscriptions", len(viewport.observers))
	}
	viewport.resize(1200)
	if !responsive.Compact() {
		t.Error("detached selector should ignore resizes")
	}
}
