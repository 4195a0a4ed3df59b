// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bm25 ranks documents against free-text queries with Okapi
// BM25. Each document is a set of boosted fields; a field's boost is
// added to its terms' frequencies, so a name match outweighs a match
// in a long description.
//
// The final token of a query also matches indexed terms it prefixes
// (at a discount), which suits search-as-you-type.
package bm25
