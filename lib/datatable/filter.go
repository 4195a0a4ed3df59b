// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"fmt"
	"sort"
	"time"

	"github.com/bureau-foundation/toolshed/lib/clock"
)

// Default debounce windows. Facet changes use a shorter window than
// free text: a facet toggle is a single deliberate action, a query is
// typed a character at a time.
const (
	DefaultSearchDebounce = 500 * time.Millisecond
	DefaultFacetDebounce  = 300 * time.Millisecond
)

// FacetSet is a set of facet values. An empty set means no facet
// restriction: every row passes.
type FacetSet map[string]struct{}

// NewFacetSet returns a set containing values.
func NewFacetSet(values ...string) FacetSet {
	set := make(FacetSet, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// Has reports whether value is in the set.
func (set FacetSet) Has(value string) bool {
	_, exists := set[value]
	return exists
}

// Values returns the set's members in sorted order.
func (set FacetSet) Values() []string {
	result := make([]string, 0, len(set))
	for value := range set {
		result = append(result, value)
	}
	sort.Strings(result)
	return result
}

// Clone returns an independent copy.
func (set FacetSet) Clone() FacetSet {
	result := make(FacetSet, len(set))
	for value := range set {
		result[value] = struct{}{}
	}
	return result
}

// FilterState is the combined free-text and facet filter.
type FilterState struct {
	Query  string
	Facets FacetSet
}

// clone returns a deep copy so callers cannot mutate internal state.
func (state FilterState) clone() FilterState {
	return FilterState{Query: state.Query, Facets: state.Facets.Clone()}
}

// FilterMode selects how the table filters rows. Exactly one of
// [LocalFilter] or [DelegatedFilter]; chosen once at construction.
type FilterMode interface {
	filterMode()
}

// LocalFilter evaluates the filter in-process against every row.
type LocalFilter struct {
	// SearchColumn is the ID of the column whose Value the free-text
	// query is matched against. Empty disables free-text filtering.
	SearchColumn string

	// FacetColumn is the ID of the column whose Value must be a
	// member of the facet set. Empty disables facet filtering.
	FacetColumn string

	// Fuzzy switches free-text matching from substring to fzf-style
	// fuzzy matching.
	Fuzzy bool
}

// DelegatedFilter forwards the filter to an external handler (such as
// a server-backed search). The table renders whatever rows the host
// supplies and never re-filters them.
type DelegatedFilter struct {
	// OnSearchChange receives the debounced free-text query.
	OnSearchChange func(query string)

	// OnFilterChange receives the debounced facet values, sorted.
	OnFilterChange func(facets []string)

	// FacetColumn optionally names the column whose values populate
	// the facet picker. It is never used to filter.
	FacetColumn string
}

func (LocalFilter) filterMode()     {}
func (DelegatedFilter) filterMode() {}

// FilterCoordinator holds the pending and applied filter state and
// debounces changes into applications. In local mode an application
// re-derives the visible rows; in delegated mode it calls the external
// handlers.
type FilterCoordinator[R any] struct {
	mode    FilterMode
	columns *ColumnSet[R]
	matcher Matcher

	input   FilterState
	applied FilterState

	search *Debouncer
	facets *Debouncer

	// onApply runs after every application, in both modes.
	onApply func()

	generation int
}

// FilterTiming configures the coordinator's debounce windows. Zero
// values select the defaults; negative values disable debouncing.
type FilterTiming struct {
	SearchDebounce time.Duration
	FacetDebounce  time.Duration
}

func (timing FilterTiming) windows() (time.Duration, time.Duration) {
	search, facets := timing.SearchDebounce, timing.FacetDebounce
	if search == 0 {
		search = DefaultSearchDebounce
	}
	if facets == 0 {
		facets = DefaultFacetDebounce
	}
	return search, facets
}

// NewFilterCoordinator validates the mode against the column set.
func NewFilterCoordinator[R any](mode FilterMode, columns *ColumnSet[R], clock clock.Clock, timing FilterTiming, onApply func()) (*FilterCoordinator[R], error) {
	if mode == nil {
		mode = LocalFilter{}
	}
	coordinator := &FilterCoordinator[R]{
		mode:    mode,
		columns: columns,
		matcher: SubstringMatch,
		input:   FilterState{Facets: FacetSet{}},
		applied: FilterState{Facets: FacetSet{}},
		onApply: onApply,
	}

	switch mode := mode.(type) {
	case LocalFilter:
		for _, id := range []string{mode.SearchColumn, mode.FacetColumn} {
			if id == "" {
				continue
			}
			column, exists := columns.Lookup(id)
			if !exists {
				return nil, fmt.Errorf("datatable: filter references unknown column %q", id)
			}
			if column.Value == nil {
				return nil, fmt.Errorf("datatable: filter column %q has no Value accessor", id)
			}
		}
		if mode.Fuzzy {
			coordinator.matcher = FuzzyMatch
		}
	case DelegatedFilter:
		if mode.FacetColumn != "" {
			if _, exists := columns.Lookup(mode.FacetColumn); !exists {
				return nil, fmt.Errorf("datatable: filter references unknown column %q", mode.FacetColumn)
			}
		}
	default:
		return nil, fmt.Errorf("datatable: unsupported filter mode %T", mode)
	}

	searchWindow, facetWindow := timing.windows()
	coordinator.search = NewDebouncer(clock, searchWindow)
	coordinator.facets = NewDebouncer(clock, facetWindow)
	return coordinator, nil
}

// Mode returns the mode chosen at construction.
func (coordinator *FilterCoordinator[R]) Mode() FilterMode {
	return coordinator.mode
}

// Delegated reports whether filtering is handled externally.
func (coordinator *FilterCoordinator[R]) Delegated() bool {
	_, delegated := coordinator.mode.(DelegatedFilter)
	return delegated
}

// SetQuery records a free-text query and (re)starts the search
// debounce window. The query is applied once the window elapses
// without another SetQuery, even if it is empty or unchanged.
func (coordinator *FilterCoordinator[R]) SetQuery(query string) {
	coordinator.input.Query = query
	coordinator.search.Trigger(func() {
		coordinator.applied.Query = query
		coordinator.apply(func(mode DelegatedFilter) {
			if mode.OnSearchChange != nil {
				mode.OnSearchChange(query)
			}
		})
	})
}

// SetFacets records the facet values and (re)starts the facet debounce
// window.
func (coordinator *FilterCoordinator[R]) SetFacets(values ...string) {
	facets := NewFacetSet(values...)
	coordinator.input.Facets = facets
	coordinator.facets.Trigger(func() {
		coordinator.applied.Facets = facets.Clone()
		coordinator.apply(func(mode DelegatedFilter) {
			if mode.OnFilterChange != nil {
				mode.OnFilterChange(facets.Values())
			}
		})
	})
}

// ToggleFacet adds or removes one facet value from the pending set.
func (coordinator *FilterCoordinator[R]) ToggleFacet(value string) {
	facets := coordinator.input.Facets.Clone()
	if facets.Has(value) {
		delete(facets, value)
	} else {
		facets[value] = struct{}{}
	}
	coordinator.SetFacets(facets.Values()...)
}

// Flush applies any pending query or facet change immediately.
func (coordinator *FilterCoordinator[R]) Flush() {
	coordinator.search.Flush()
	coordinator.facets.Flush()
}

// SetInput replaces both pending and applied state without debouncing
// and without calling delegated handlers. Hosts use it to push an
// externally controlled search or filter value into the table.
func (coordinator *FilterCoordinator[R]) SetInput(state FilterState) {
	coordinator.search.Cancel()
	coordinator.facets.Cancel()
	if state.Facets == nil {
		state.Facets = FacetSet{}
	}
	coordinator.input = state.clone()
	coordinator.applied = state.clone()
	if coordinator.onApply != nil {
		coordinator.onApply()
	}
}

// Input returns the pending (most recently typed) filter state.
func (coordinator *FilterCoordinator[R]) Input() FilterState {
	return coordinator.input.clone()
}

// Applied returns the filter state of the last application.
func (coordinator *FilterCoordinator[R]) Applied() FilterState {
	return coordinator.applied.clone()
}

// Pending reports whether a debounced change has not been applied yet.
func (coordinator *FilterCoordinator[R]) Pending() bool {
	return coordinator.search.Pending() || coordinator.facets.Pending()
}

// Generation counts applications since construction.
func (coordinator *FilterCoordinator[R]) Generation() int {
	return coordinator.generation
}

// Evaluate returns the rows passing the applied filter. In delegated
// mode rows are returned unchanged.
func (coordinator *FilterCoordinator[R]) Evaluate(rows []R) []R {
	switch mode := coordinator.mode.(type) {
	case LocalFilter:
		return coordinator.evaluateLocal(mode, rows)
	case DelegatedFilter:
		return rows
	default:
		return rows
	}
}

// Close stops both debounce timers.
func (coordinator *FilterCoordinator[R]) Close() {
	coordinator.search.Close()
	coordinator.facets.Close()
}

func (coordinator *FilterCoordinator[R]) apply(delegate func(DelegatedFilter)) {
	coordinator.generation++
	switch mode := coordinator.mode.(type) {
	case LocalFilter:
	case DelegatedFilter:
		delegate(mode)
	}
	if coordinator.onApply != nil {
		coordinator.onApply()
	}
}

func (coordinator *FilterCoordinator[R]) evaluateLocal(mode LocalFilter, rows []R) []R {
	query := coordinator.applied.Query
	facets := coordinator.applied.Facets

	var searchValue, facetValue func(R) string
	if column, exists := coordinator.columns.Lookup(mode.SearchColumn); exists && query != "" {
		searchValue = column.Value
	}
	if column, exists := coordinator.columns.Lookup(mode.FacetColumn); exists && len(facets) > 0 {
		facetValue = column.Value
	}
	if searchValue == nil && facetValue == nil {
		return rows
	}

	result := make([]R, 0, len(rows))
	for _, row := range rows {
		if facetValue != nil && !facets.Has(facetValue(row)) {
			continue
		}
		if searchValue != nil && !coordinator.matcher(searchValue(row), query) {
			continue
		}
		result = append(result, row)
	}
	return result
}
