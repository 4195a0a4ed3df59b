// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Matcher reports whether a cell value matches a free-text query. The
// query is never empty when a Matcher is called.
type Matcher func(value, query string) bool

// SubstringMatch is the default free-text matcher: case-insensitive
// substring containment.
func SubstringMatch(value, query string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

var fuzzyInit sync.Once

// FuzzyMatch matches with fzf's V2 algorithm (the same scoring fzf uses
// interactively), case-insensitively. "hmdr" matches "Hammer drill".
func FuzzyMatch(value, query string) bool {
	return FuzzyScore(value, query) > 0
}

// FuzzyScore returns fzf's match score for value against query, or 0
// when the query does not match.
func FuzzyScore(value, query string) int {
	fuzzyInit.Do(func() { algo.Init("default") })

	pattern := []rune(strings.ToLower(query))
	if len(pattern) == 0 {
		return 0
	}
	chars := util.ToChars([]byte(value))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, nil)
	if result.Start < 0 {
		return 0
	}
	return result.Score
}
