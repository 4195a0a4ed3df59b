// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bureau-foundation/toolshed/lib/bm25"
	"github.com/bureau-foundation/toolshed/lib/clock"
)

// Field boosts for ranked search. A name match outranks a category
// match, which outranks the descriptive fields.
const (
	nameBoost     = 3
	categoryBoost = 2
	detailBoost   = 1
)

// SearchService answers filter requests against an Index the way a
// remote backend would: ranked results after a configurable latency.
// The browser uses it in delegated filtering mode.
type SearchService struct {
	index   *Index
	latency time.Duration
	clock   clock.Clock

	mutex   sync.Mutex
	ranked  *bm25.Index
	tools   []Tool
	version uint64
	built   bool
}

// NewSearchService returns a service over index. latency may be zero.
func NewSearchService(index *Index, latency time.Duration, clk clock.Clock) *SearchService {
	return &SearchService{index: index, latency: latency, clock: clk}
}

// Search waits for the configured latency then returns Query's result.
// It returns ctx.Err() if ctx ends first.
func (service *SearchService) Search(ctx context.Context, query string, categories []string) ([]Tool, error) {
	if service.latency > 0 {
		ready := make(chan struct{})
		timer := service.clock.AfterFunc(service.latency, func() { close(ready) })
		select {
		case <-ready:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return service.Query(query, categories), nil
}

// Query returns the tools in any of categories (all tools when
// categories is empty). An empty query keeps the index order; otherwise
// matches are ranked by relevance and non-matching tools are dropped.
func (service *SearchService) Query(query string, categories []string) []Tool {
	ranked, shared := service.rankedIndex()
	tools := slices.Clone(shared)
	if len(categories) > 0 {
		tools = slices.DeleteFunc(tools, func(tool Tool) bool {
			return !slices.Contains(categories, tool.Category)
		})
	}
	if len(bm25.Tokenize(query)) == 0 {
		return tools
	}

	byID := make(map[string]Tool, len(tools))
	for _, tool := range tools {
		byID[tool.ID] = tool
	}
	hits := ranked.Search(query, 0)
	results := make([]Tool, 0, len(hits))
	for _, hit := range hits {
		if tool, ok := byID[hit.ID]; ok {
			results = append(results, tool)
		}
	}
	return results
}

// rankedIndex returns a bm25 index current with the inventory together
// with the tools it was built from, rebuilding both when the inventory
// version has moved. The returned slice is shared; callers must not
// modify it.
func (service *SearchService) rankedIndex() (*bm25.Index, []Tool) {
	service.mutex.Lock()
	defer service.mutex.Unlock()

	if service.built && service.index.Version() == service.version {
		return service.ranked, service.tools
	}
	version, tools := service.index.snapshot()
	documents := make([]bm25.Document, 0, len(tools))
	for _, tool := range tools {
		documents = append(documents, bm25.Document{
			ID: tool.ID,
			Fields: []bm25.Field{
				{Text: tool.Name, Boost: nameBoost},
				{Text: tool.Category, Boost: categoryBoost},
				{Text: tool.Location, Boost: detailBoost},
				{Text: tool.Holder, Boost: detailBoost},
				{Text: tool.Serial, Boost: detailBoost},
			},
		})
	}
	service.ranked = bm25.New(documents)
	service.tools = tools
	service.version = version
	service.built = true
	return service.ranked, tools
}
