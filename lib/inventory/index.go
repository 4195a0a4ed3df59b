// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"slices"
	"strings"
	"sync"
)

// subscriberBuffer is the capacity of each Subscribe channel. Events
// beyond it are dropped; subscribers re-read the index on the next
// event they do receive.
const subscriberBuffer = 64

// EventKind distinguishes index changes.
type EventKind int

const (
	// EventPut reports a created or updated tool.
	EventPut EventKind = iota
	// EventRemove reports a removed tool.
	EventRemove
)

func (kind EventKind) String() string {
	if kind == EventRemove {
		return "remove"
	}
	return "put"
}

// Event describes one change to an Index.
type Event struct {
	ToolID string
	Kind   EventKind
	Tool   Tool
}

// Index is the in-memory inventory. Safe for concurrent use.
type Index struct {
	mutex       sync.RWMutex
	tools       map[string]Tool
	version     uint64
	subscribers []chan Event
	closed      bool
}

// NewIndex returns an index holding tools.
func NewIndex(tools ...Tool) *Index {
	index := &Index{tools: make(map[string]Tool, len(tools))}
	for _, tool := range tools {
		index.tools[tool.ID] = tool.normalize()
	}
	return index
}

// Put adds or replaces a tool and notifies subscribers.
func (index *Index) Put(tool Tool) {
	tool = tool.normalize()
	index.mutex.Lock()
	index.tools[tool.ID] = tool
	index.version++
	index.dispatch(Event{ToolID: tool.ID, Kind: EventPut, Tool: tool})
	index.mutex.Unlock()
}

// Update applies mutate to the tool with id and stores the result.
// Returns false if no such tool exists.
func (index *Index) Update(id string, mutate func(*Tool)) (Tool, bool) {
	index.mutex.Lock()
	tool, exists := index.tools[id]
	if !exists {
		index.mutex.Unlock()
		return Tool{}, false
	}
	mutate(&tool)
	tool.ID = id
	tool = tool.normalize()
	index.tools[id] = tool
	index.version++
	index.dispatch(Event{ToolID: id, Kind: EventPut, Tool: tool})
	index.mutex.Unlock()
	return tool, true
}

// Remove deletes a tool. Returns false if it was absent.
func (index *Index) Remove(id string) bool {
	index.mutex.Lock()
	tool, exists := index.tools[id]
	if !exists {
		index.mutex.Unlock()
		return false
	}
	delete(index.tools, id)
	index.version++
	index.dispatch(Event{ToolID: id, Kind: EventRemove, Tool: tool})
	index.mutex.Unlock()
	return true
}

// Get returns the tool with id.
func (index *Index) Get(id string) (Tool, bool) {
	index.mutex.RLock()
	defer index.mutex.RUnlock()
	tool, exists := index.tools[id]
	return tool, exists
}

// Len returns the number of tools.
func (index *Index) Len() int {
	index.mutex.RLock()
	defer index.mutex.RUnlock()
	return len(index.tools)
}

// Version increases on every change.
func (index *Index) Version() uint64 {
	index.mutex.RLock()
	defer index.mutex.RUnlock()
	return index.version
}

// All returns every tool sorted case-insensitively by name, then ID.
func (index *Index) All() []Tool {
	_, tools := index.snapshot()
	return tools
}

// snapshot returns All's result and the version it was read at.
func (index *Index) snapshot() (uint64, []Tool) {
	index.mutex.RLock()
	version := index.version
	tools := make([]Tool, 0, len(index.tools))
	for _, tool := range index.tools {
		tools = append(tools, tool)
	}
	index.mutex.RUnlock()

	slices.SortFunc(tools, func(left, right Tool) int {
		if byName := strings.Compare(strings.ToLower(left.Name), strings.ToLower(right.Name)); byName != 0 {
			return byName
		}
		return strings.Compare(left.ID, right.ID)
	})
	return version, tools
}

// Categories returns the distinct non-empty categories, sorted.
func (index *Index) Categories() []string {
	index.mutex.RLock()
	seen := make(map[string]struct{})
	for _, tool := range index.tools {
		if tool.Category != "" {
			seen[tool.Category] = struct{}{}
		}
	}
	index.mutex.RUnlock()

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	slices.Sort(categories)
	return categories
}

// StatusCounts returns how many tools are in each status.
func (index *Index) StatusCounts() map[Status]int {
	index.mutex.RLock()
	defer index.mutex.RUnlock()
	counts := make(map[Status]int, len(Statuses))
	for _, tool := range index.tools {
		counts[tool.Status]++
	}
	return counts
}

// Subscribe returns a channel of future changes. It is closed by
// Close. After Close, Subscribe returns a closed channel.
func (index *Index) Subscribe() <-chan Event {
	index.mutex.Lock()
	defer index.mutex.Unlock()
	channel := make(chan Event, subscriberBuffer)
	if index.closed {
		close(channel)
		return channel
	}
	index.subscribers = append(index.subscribers, channel)
	return channel
}

// Close closes every subscriber channel. The index stays readable and
// writable; later changes are not dispatched.
func (index *Index) Close() {
	index.mutex.Lock()
	defer index.mutex.Unlock()
	if index.closed {
		return
	}
	index.closed = true
	for _, subscriber := range index.subscribers {
		close(subscriber)
	}
	index.subscribers = nil
}

// dispatch offers event to every subscriber without blocking. Called
// with the write lock held so Close cannot close a channel mid-send.
func (index *Index) dispatch(event Event) {
	for _, subscriber := range index.subscribers {
		select {
		case subscriber <- event:
		default:
		}
	}
}
