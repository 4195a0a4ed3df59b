// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 25

// Paginator slices a row count into fixed-size pages. The page index
// is always within [0, PageCount()-1]; every mutation re-clamps it.
type Paginator struct {
	pageIndex int
	pageSize  int
	total     int
	disabled  bool
}

// NewPaginator returns a Paginator on page 0. A pageSize <= 0 selects
// DefaultPageSize.
func NewPaginator(pageSize int) *Paginator {
	paginator := &Paginator{}
	paginator.SetPageSize(pageSize)
	return paginator
}

// SetPageSize changes the page size and re-clamps the index.
func (paginator *Paginator) SetPageSize(pageSize int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	paginator.pageSize = pageSize
	paginator.clamp()
}

// SetDisabled turns paging off (one page holds every row) or back on.
func (paginator *Paginator) SetDisabled(disabled bool) {
	paginator.disabled = disabled
	paginator.clamp()
}

// SetTotal records the filtered row count. If the current page no
// longer exists it moves to the last page.
func (paginator *Paginator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	paginator.total = total
	paginator.clamp()
}

// PageSize returns the configured page size.
func (paginator *Paginator) PageSize() int {
	return paginator.pageSize
}

// PageIndex returns the 0-based current page.
func (paginator *Paginator) PageIndex() int {
	return paginator.pageIndex
}

// Total returns the row count being paged.
func (paginator *Paginator) Total() int {
	return paginator.total
}

// PageCount returns ceil(total/pageSize), never less than 1.
func (paginator *Paginator) PageCount() int {
	if paginator.disabled || paginator.total == 0 {
		return 1
	}
	return (paginator.total + paginator.pageSize - 1) / paginator.pageSize
}

// Next moves to the following page. Returns false at the last page.
func (paginator *Paginator) Next() bool {
	if paginator.pageIndex >= paginator.PageCount()-1 {
		return false
	}
	paginator.pageIndex++
	return true
}

// Previous moves to the preceding page. Returns false at page 0.
func (paginator *Paginator) Previous() bool {
	if paginator.pageIndex == 0 {
		return false
	}
	paginator.pageIndex--
	return true
}

// SetPage jumps to index, clamped to the valid range.
func (paginator *Paginator) SetPage(index int) {
	paginator.pageIndex = index
	paginator.clamp()
}

// Bounds returns the half-open row range [start, end) of the current
// page.
func (paginator *Paginator) Bounds() (start, end int) {
	if paginator.disabled {
		return 0, paginator.total
	}
	start = paginator.pageIndex * paginator.pageSize
	end = start + paginator.pageSize
	if start > paginator.total {
		start = paginator.total
	}
	if end > paginator.total {
		end = paginator.total
	}
	return start, end
}

func (paginator *Paginator) clamp() {
	last := paginator.PageCount() - 1
	if paginator.pageIndex > last {
		paginator.pageIndex = last
	}
	if paginator.pageIndex < 0 {
		paginator.pageIndex = 0
	}
}

// PageOf returns the slice of rows on the paginator's current page.
func PageOf[R any](paginator *Paginator, rows []R) []R {
	start, end := paginator.Bounds()
	if end > len(rows) {
		end = len(rows)
	}
	if start > end {
		start = end
	}
	return rows[start:end]
}
