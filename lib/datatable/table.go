// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bureau-foundation/toolshed/lib/clock"
)

// Config is the complete, explicit configuration of a Table. The zero
// value of every optional field selects the documented default, and
// every feature is enabled unless its Disable flag is set.
type Config[R any] struct {
	// Columns defines the table's columns. Required.
	Columns []Column[R]

	// RowID returns the stable identity of a row, used as the
	// selection and menu key. Required.
	RowID func(row R) string

	// Filter selects local or delegated filtering. Nil means
	// LocalFilter{} (no searchable or facet column).
	Filter FilterMode

	// SelectScope decides what "select all" selects.
	SelectScope SelectScope

	// PageSize is the fixed page size (default DefaultPageSize).
	PageSize int

	// Breakpoint is the viewport width below which the card layout
	// is used (default DataBreakpoint).
	Breakpoint int

	// HiddenColumns lists hideable columns that start hidden.
	HiddenColumns []string

	DisableSelection        bool
	DisableRowActions       bool
	DisableColumnVisibility bool
	DisablePagination       bool

	// RowActions are the row menu handlers.
	RowActions RowActions[R]

	// BulkActions are shown in the bulk-action bar.
	BulkActions []BulkAction[R]

	// OnRowClick is called when a row is activated.
	OnRowClick func(row R)

	// OnSelectionChange is called after every selection mutation with
	// the selected IDs in sorted order.
	OnSelectionChange func(ids []string)

	// Timing. Zero selects the default for each.
	SearchDebounce time.Duration
	FacetDebounce  time.Duration
	ResizeDebounce time.Duration
	ExitDelay      time.Duration
	EnterDuration  time.Duration

	// Clock schedules every timer. Default clock.Real(); hosts with
	// an event loop must supply a clock that calls back on that loop.
	Clock clock.Clock

	// Logger receives debug records (default: discarded).
	Logger *slog.Logger
}

// Snapshot is everything a renderer needs to draw the table at one
// instant.
type Snapshot[R any] struct {
	// Rows are the rows of the current page, filtered and sorted.
	Rows []R
	// Columns are the visible columns.
	Columns []Column[R]

	Compact bool
	Loading bool
	// Empty is true when no row passes the filter and the table is
	// not loading: renderers show an explicit "no results" state.
	Empty bool

	TotalRows    int
	FilteredRows int
	PageIndex    int
	PageCount    int

	Header        CheckState
	SelectedCount int
	BulkPhase     BulkPhase
	BulkProgress  float64

	MenuRow     string
	MenuOpen    bool
	MenuActions []RowAction

	Sort   SortState
	Filter FilterState

	SelectionEnabled        bool
	RowActionsEnabled       bool
	ColumnVisibilityEnabled bool
	PaginationEnabled       bool
}

// Table is a headless data browser over rows of type R.
type Table[R any] struct {
	config     Config[R]
	logger     *slog.Logger
	columns    *ColumnSet[R]
	filter     *FilterCoordinator[R]
	selection  *Selection
	paginator  *Paginator
	responsive *Responsive
	bulk       *BulkBar
	menu       MenuOwner
	sort       SortState

	rows     []R
	present  map[string]R
	filtered []R
	loading  bool
	closed   bool
}

// New validates config and returns a table with no rows.
func New[R any](config Config[R]) (*Table[R], error) {
	if config.RowID == nil {
		return nil, fmt.Errorf("datatable: RowID is required")
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	columns, err := NewColumnSet(config.Columns)
	if err != nil {
		return nil, err
	}
	for _, id := range config.HiddenColumns {
		if !columns.SetVisible(id, false) {
			return nil, fmt.Errorf("datatable: column %q cannot be hidden", id)
		}
	}

	table := &Table[R]{
		config:    config,
		logger:    logger,
		columns:   columns,
		selection: NewSelection(),
		paginator: NewPaginator(config.PageSize),
		present:   make(map[string]R),
	}
	table.paginator.SetDisabled(config.DisablePagination)

	table.filter, err = NewFilterCoordinator(config.Filter, columns, config.Clock, FilterTiming{
		SearchDebounce: config.SearchDebounce,
		FacetDebounce:  config.FacetDebounce,
	}, table.refresh)
	if err != nil {
		return nil, err
	}

	table.bulk = NewBulkBar(config.Clock, BulkTiming{
		ExitDelay:     config.ExitDelay,
		EnterDuration: config.EnterDuration,
	}, nil)
	table.selection.Observe(table.selectionChanged)
	table.responsive = NewResponsive(config.Breakpoint, config.Clock, config.ResizeDebounce, nil)
	return table, nil
}

// SetRows replaces the row set. Selected IDs whose rows are gone are
// dropped, and an open menu for a vanished row is closed.
func (table *Table[R]) SetRows(rows []R) {
	if table.closed {
		return
	}
	table.rows = rows
	table.present = make(map[string]R, len(rows))
	for _, row := range rows {
		table.present[table.config.RowID(row)] = row
	}

	dropped := table.selection.Retain(func(id string) bool {
		_, exists := table.present[id]
		return exists
	})
	if dropped > 0 {
		table.logger.Debug("dropped stale selection", "count", dropped)
	}
	if holder, open := table.menu.Holder(); open {
		if _, exists := table.present[holder]; !exists {
			table.menu.Release()
		}
	}
	table.refresh()
}

// SetLoading sets the host-controlled loading flag.
func (table *Table[R]) SetLoading(loading bool) {
	table.loading = loading
}

// Loading reports the loading flag.
func (table *Table[R]) Loading() bool {
	return table.loading
}

// Rows returns every row as supplied by the host.
func (table *Table[R]) Rows() []R {
	return table.rows
}

// Row looks up a present row by ID.
func (table *Table[R]) Row(id string) (R, bool) {
	row, exists := table.present[id]
	return row, exists
}

// RowID returns the identity of row.
func (table *Table[R]) RowID(row R) string {
	return table.config.RowID(row)
}

// Columns returns the column set.
func (table *Table[R]) Columns() *ColumnSet[R] {
	return table.columns
}

// Filter returns the filter coordinator.
func (table *Table[R]) Filter() *FilterCoordinator[R] {
	return table.filter
}

// Selection returns the selection manager.
func (table *Table[R]) Selection() *Selection {
	return table.selection
}

// Paginator returns the pagination controller.
func (table *Table[R]) Paginator() *Paginator {
	return table.paginator
}

// BulkBar returns the bulk-action bar state machine.
func (table *Table[R]) BulkBar() *BulkBar {
	return table.bulk
}

// Responsive returns the responsive view selector.
func (table *Table[R]) Responsive() *Responsive {
	return table.responsive
}

// Filtered returns every row passing the applied filter, sorted.
func (table *Table[R]) Filtered() []R {
	return table.filtered
}

// Page returns the rows of the current page.
func (table *Table[R]) Page() []R {
	return PageOf(table.paginator, table.filtered)
}

// Search records a free-text query (debounced).
func (table *Table[R]) Search(query string) {
	if table.closed {
		return
	}
	table.filter.SetQuery(query)
}

// SetFacets records the facet values (debounced).
func (table *Table[R]) SetFacets(values ...string) {
	if table.closed {
		return
	}
	table.filter.SetFacets(values...)
}

// ToggleFacet adds or removes a single facet value (debounced).
func (table *Table[R]) ToggleFacet(value string) {
	if table.closed {
		return
	}
	table.filter.ToggleFacet(value)
}

// FlushFilters applies pending filter input immediately.
func (table *Table[R]) FlushFilters() {
	if table.closed {
		return
	}
	table.filter.Flush()
}

// SetFilterInput pushes an externally controlled filter state.
func (table *Table[R]) SetFilterInput(state FilterState) {
	if table.closed {
		return
	}
	table.filter.SetInput(state)
}

// FacetOptions returns the distinct values of the facet column across
// all rows, sorted, plus any currently selected facet values that no
// row carries (so they can still be deselected).
func (table *Table[R]) FacetOptions() []string {
	var columnID string
	switch mode := table.filter.Mode().(type) {
	case LocalFilter:
		columnID = mode.FacetColumn
	case DelegatedFilter:
		columnID = mode.FacetColumn
	}
	column, exists := table.columns.Lookup(columnID)
	if !exists || column.Value == nil {
		return nil
	}
	values := table.filter.Input().Facets.Clone()
	for _, row := range table.rows {
		values[column.Value(row)] = struct{}{}
	}
	delete(values, "")
	return values.Values()
}

// ToggleRow flips the selection of one row.
func (table *Table[R]) ToggleRow(id string) {
	if table.closed || table.config.DisableSelection {
		return
	}
	table.selection.Toggle(id)
}

// ToggleAll selects or deselects every row in the table's select
// scope.
func (table *Table[R]) ToggleAll() {
	if table.closed || table.config.DisableSelection {
		return
	}
	table.selection.ToggleAll(table.scopeIDs())
}

// ClearSelection empties the selection synchronously.
func (table *Table[R]) ClearSelection() {
	if table.closed {
		return
	}
	table.selection.Clear()
}

// IsSelected reports whether id is selected.
func (table *Table[R]) IsSelected(id string) bool {
	return table.selection.Contains(id)
}

// Selected returns the selected rows that are present, in data order.
// Stale IDs contribute nothing.
func (table *Table[R]) Selected() []R {
	var result []R
	for _, row := range table.rows {
		if table.selection.Contains(table.config.RowID(row)) {
			result = append(result, row)
		}
	}
	return result
}

// HeaderState derives the header checkbox state over the select
// scope.
func (table *Table[R]) HeaderState() CheckState {
	return table.selection.State(table.scopeIDs())
}

// NextPage advances one page; no-op on the last page.
func (table *Table[R]) NextPage() bool {
	if table.closed {
		return false
	}
	return table.paginator.Next()
}

// PreviousPage goes back one page; no-op on page 0.
func (table *Table[R]) PreviousPage() bool {
	if table.closed {
		return false
	}
	return table.paginator.Previous()
}

// SetPage jumps to a page, clamped to the valid range.
func (table *Table[R]) SetPage(index int) {
	if table.closed {
		return
	}
	table.paginator.SetPage(index)
}

// Resize feeds a viewport resize event to the responsive selector.
func (table *Table[R]) Resize(width int) {
	if table.closed {
		return
	}
	table.responsive.Observe(width)
}

// AttachViewport subscribes the responsive selector to source. The
// subscription is released by Close.
func (table *Table[R]) AttachViewport(source ViewportSource) {
	if table.closed {
		return
	}
	table.responsive.Attach(source)
}

// Compact reports whether the card layout is active.
func (table *Table[R]) Compact() bool {
	return table.responsive.Compact()
}

// ToggleSort cycles the sort on a sortable column. Returns false for
// unknown or non-sortable columns.
func (table *Table[R]) ToggleSort(columnID string) bool {
	if table.closed {
		return false
	}
	column, exists := table.columns.Lookup(columnID)
	if !exists || !column.Sortable {
		return false
	}
	table.sort = table.sort.next(columnID)
	table.refresh()
	return true
}

// Sort returns the current sort state.
func (table *Table[R]) Sort() SortState {
	return table.sort
}

// SetColumnVisible shows or hides a hideable column. Returns false when
// column visibility is disabled or the column cannot change.
func (table *Table[R]) SetColumnVisible(columnID string, visible bool) bool {
	if table.closed || table.config.DisableColumnVisibility {
		return false
	}
	return table.columns.SetVisible(columnID, visible)
}

// OpenRowMenu opens id's row menu, closing any other open menu.
// Returns false when row actions are disabled, no handler is
// configured, or the row is not present.
func (table *Table[R]) OpenRowMenu(id string) bool {
	if table.closed || table.config.DisableRowActions || len(table.config.RowActions.Available()) == 0 {
		return false
	}
	if _, exists := table.present[id]; !exists {
		return false
	}
	if evicted, had := table.menu.Acquire(id); had {
		table.logger.Debug("row menu evicted", "row", evicted, "by", id)
	}
	return true
}

// CloseRowMenu closes the open row menu (an outside click).
func (table *Table[R]) CloseRowMenu() {
	table.menu.Release()
}

// OpenMenu returns the row whose menu is open.
func (table *Table[R]) OpenMenu() (string, bool) {
	return table.menu.Holder()
}

// DispatchRowAction forwards action for the open menu's row to the
// host handler and closes the menu. Returns false if no menu was open,
// the action has no handler, or the row vanished.
func (table *Table[R]) DispatchRowAction(action RowAction) bool {
	holder, open := table.menu.Holder()
	if !open {
		return false
	}
	table.menu.Release()
	if table.closed {
		return false
	}
	handler := table.config.RowActions.handler(action)
	row, exists := table.present[holder]
	if handler == nil || !exists {
		return false
	}
	handler(row)
	return true
}

// ClickRow activates a row: any open menu closes, then OnRowClick is
// called. Returns false if the row is not present.
func (table *Table[R]) ClickRow(id string) bool {
	table.menu.Release()
	if table.closed {
		return false
	}
	row, exists := table.present[id]
	if !exists {
		return false
	}
	if table.config.OnRowClick != nil {
		table.config.OnRowClick(row)
	}
	return true
}

// BulkActions returns the configured bulk actions.
func (table *Table[R]) BulkActions() []BulkAction[R] {
	return table.config.BulkActions
}

// RunBulkAction runs the bulk action with the given ID on the selected
// rows. Returns false if no such action exists or nothing is selected.
func (table *Table[R]) RunBulkAction(id string) bool {
	if table.closed {
		return false
	}
	selected := table.Selected()
	if len(selected) == 0 {
		return false
	}
	for _, action := range table.config.BulkActions {
		if action.ID == id && action.Run != nil {
			action.Run(selected)
			return true
		}
	}
	return false
}

// Snapshot captures the current view state.
func (table *Table[R]) Snapshot() Snapshot[R] {
	menuRow, menuOpen := table.menu.Holder()
	var menuActions []RowAction
	if menuOpen {
		menuActions = table.config.RowActions.Available()
	}
	return Snapshot[R]{
		Rows:                    table.Page(),
		Columns:                 table.columns.Visible(),
		Compact:                 table.responsive.Compact(),
		Loading:                 table.loading,
		Empty:                   !table.loading && len(table.filtered) == 0,
		TotalRows:               len(table.rows),
		FilteredRows:            len(table.filtered),
		PageIndex:               table.paginator.PageIndex(),
		PageCount:               table.paginator.PageCount(),
		Header:                  table.HeaderState(),
		SelectedCount:           table.selection.Len(),
		BulkPhase:               table.bulk.Phase(),
		BulkProgress:            table.bulk.Progress(),
		MenuRow:                 menuRow,
		MenuOpen:                menuOpen,
		MenuActions:             menuActions,
		Sort:                    table.sort,
		Filter:                  table.filter.Input(),
		SelectionEnabled:        !table.config.DisableSelection,
		RowActionsEnabled:       !table.config.DisableRowActions && len(table.config.RowActions.Available()) > 0,
		ColumnVisibilityEnabled: !table.config.DisableColumnVisibility,
		PaginationEnabled:       !table.config.DisablePagination,
	}
}

// Close stops every timer and releases the viewport subscription.
// Later mutations are no-ops.
func (table *Table[R]) Close() {
	if table.closed {
		return
	}
	table.closed = true
	table.filter.Close()
	table.responsive.Close()
	table.bulk.Close()
	table.menu.Release()
}

// Closed reports whether Close has been called.
func (table *Table[R]) Closed() bool {
	return table.closed
}

func (table *Table[R]) selectionChanged(size int) {
	table.bulk.SelectionChanged(size)
	if table.config.OnSelectionChange != nil {
		table.config.OnSelectionChange(table.selection.IDs())
	}
}

// refresh re-derives the filtered, sorted rows and re-clamps paging.
func (table *Table[R]) refresh() {
	filtered := table.filter.Evaluate(table.rows)
	if table.sort.ColumnID != "" {
		if column, exists := table.columns.Lookup(table.sort.ColumnID); exists {
			filtered = sortRows(filtered, column, table.sort.Descending)
		}
	}
	table.filtered = filtered
	table.paginator.SetTotal(len(filtered))
}

// scopeIDs returns the IDs "select all" acts on.
func (table *Table[R]) scopeIDs() []string {
	var rows []R
	switch table.config.SelectScope {
	case ScopeFiltered:
		rows = table.filtered
	default:
		rows = table.Page()
	}
	ids := make([]string, len(rows))
	for index, row := range rows {
		ids[index] = table.config.RowID(row)
	}
	sort.Strings(ids)
	return ids
}
