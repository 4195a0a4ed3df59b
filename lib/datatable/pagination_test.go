// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import "testing"

func TestPaginatorPageCount(t *testing.T) {
	for _, size := range []int{1, 3, 10, 25} {
		for total := 0; total <= 60; total++ {
			paginator := NewPaginator(size)
			paginator.SetTotal(total)
			want := (total + size - 1) / size
			if want < 1 {
				want = 1
			}
			if got := paginator.PageCount(); got != want {
				t.Fatalf("size %d total %d: PageCount = %d, want %d", size, total, got, want)
			}
		}
	}
}

func TestPaginatorDefaultSize(t *testing.T) {
	if got := NewPaginator(0).PageSize(); got != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", got, DefaultPageSize)
	}
}

func TestPaginatorBounds(t *testing.T) {
	paginator := NewPaginator(10)
	paginator.SetTotal(25)

	if paginator.Previous() {
		t.Error("Previous on page 0 should be a no-op")
	}
	if !paginator.Next() || !paginator.Next() {
		t.Fatal("Next should move to page 2")
	}
	if paginator.Next() {
		t.Error("Next on the last page should be a no-op")
	}
	start, end := paginator.Bounds()
	if start != 20 || end != 25 {
		t.Errorf("Bounds = [%d, %d), want [20, 25)", start, end)
	}
}

func TestPaginatorClampsOnShrink(t *testing.T) {
	paginator := NewPaginator(10)
	paginator.SetTotal(50)
	paginator.SetPage(4)

	paginator.SetTotal(12)
	if got := paginator.PageIndex(); got != 1 {
		t.Fatalf("PageIndex after shrink = %d, want 1", got)
	}
	paginator.SetTotal(0)
	if got := paginator.PageIndex(); got != 0 {
		t.Fatalf("PageIndex for empty = %d, want 0", got)
	}

	paginator.SetTotal(50)
	paginator.SetPage(-3)
	if got := paginator.PageIndex(); got != 0 {
		t.Errorf("SetPage(-3) = %d, want 0", got)
	}
	paginator.SetPage(99)
	if got := paginator.PageIndex(); got != 4 {
		t.Errorf("SetPage(99) = %d, want 4", got)
	}
}

func TestPaginatorDisabled(t *testing.T) {
	paginator := NewPaginator(10)
	paginator.SetTotal(35)
	paginator.SetPage(2)
	paginator.SetDisabled(true)

	if paginator.PageCount() != 1 || paginator.PageIndex() != 0 {
		t.Fatalf("disabled: PageCount = %d, PageIndex = %d", paginator.PageCount(), paginator.PageIndex())
	}
	rows := makeItems(35)
	if got := len(PageOf(paginator, rows)); got != 35 {
		t.Errorf("disabled page holds %d rows, want 35", got)
	}
}

func TestPageOf(t *testing.T) {
	paginator := NewPaginator(4)
	rows := makeItems(10)
	paginator.SetTotal(len(rows))
	paginator.SetPage(2)
	if got := ids(PageOf(paginator, rows)); len(got) != 2 || got[0] != "r08" || got[1] != "r09" {
		t.Fatalf("last page = %v, want [r08 r09]", got)
	}
}
