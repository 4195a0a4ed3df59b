// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"slices"
	"testing"
)

func TestMenuOwnerExclusive(t *testing.T) {
	var owner MenuOwner

	if _, had := owner.Acquire("a"); had {
		t.Fatal("first Acquire should not evict")
	}
	evicted, had := owner.Acquire("b")
	if !had || evicted != "a" {
		t.Fatalf("Acquire(b) evicted %q, %v; want a, true", evicted, had)
	}
	if owner.Holds("a") || !owner.Holds("b") {
		t.Fatal("only b's menu should be open")
	}
	if _, had := owner.Acquire("b"); had {
		t.Error("re-acquiring the holder should not evict")
	}

	owner.Release()
	if _, open := owner.Holder(); open {
		t.Error("Release should close the menu")
	}
}

func TestRowActionsAvailable(t *testing.T) {
	actions := RowActions[item]{
		OnView:   func(item) {},
		OnDelete: func(item) {},
	}
	if got := actions.Available(); !slices.Equal(got, []RowAction{ActionView, ActionDelete}) {
		t.Fatalf("Available = %v", got)
	}
	if actions.handler(ActionEdit) != nil {
		t.Error("edit has no handler")
	}
	if ActionView.Label() != "View details" || ActionDelete.String() != "delete" {
		t.Error("unexpected action labels")
	}
}
