// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bm25

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode"
)

// Okapi BM25 parameters.
const (
	k1 = 1.2
	b  = 0.75

	// minIDF replaces the negative IDF of terms present in more than
	// half the corpus, so common words still rank a little.
	minIDF = 0.25

	// prefixDiscount scales the score of a term matched only as a
	// prefix of the final query token.
	prefixDiscount = 0.6
)

// Field is one text field of a document. Boost repeats the field's
// tokens in the composite document; fields with Boost <= 0 are not
// indexed.
type Field struct {
	Text  string
	Boost int
}

// Document is an identified set of fields.
type Document struct {
	ID     string
	Fields []Field
}

// Hit is one ranked result.
type Hit struct {
	ID    string
	Score float64
}

// Index is an immutable BM25 index. Safe for concurrent reads.
type Index struct {
	ids         []string
	frequencies []map[string]int
	lengths     []int
	averageLen  float64
	idf         map[string]float64

	// terms is every indexed term, sorted, for prefix lookup.
	terms []string
}

// New indexes documents.
func New(documents []Document) *Index {
	index := &Index{
		ids:         make([]string, len(documents)),
		frequencies: make([]map[string]int, len(documents)),
		lengths:     make([]int, len(documents)),
		idf:         make(map[string]float64),
	}

	containing := make(map[string]int)
	total := 0
	for position, document := range documents {
		index.ids[position] = document.ID
		frequency := make(map[string]int)
		length := 0
		for _, field := range document.Fields {
			if field.Boost <= 0 {
				continue
			}
			for _, token := range Tokenize(field.Text) {
				frequency[token] += field.Boost
				length += field.Boost
			}
		}
		for term := range frequency {
			containing[term]++
		}
		index.frequencies[position] = frequency
		index.lengths[position] = length
		total += length
	}
	if len(documents) > 0 {
		index.averageLen = float64(total) / float64(len(documents))
	}

	count := float64(len(documents))
	for term, documentCount := range containing {
		idf := math.Log(1 + (count-float64(documentCount)+0.5)/(float64(documentCount)+0.5))
		index.idf[term] = max(idf, minIDF)
		index.terms = append(index.terms, term)
	}
	slices.Sort(index.terms)
	return index
}

// Len returns the number of indexed documents.
func (index *Index) Len() int {
	return len(index.ids)
}

// Search ranks documents against query and returns up to limit hits
// (limit <= 0 returns all), highest score first and ties by ID. The
// last query token also matches as a prefix, so partially typed words
// find results.
func (index *Index) Search(query string, limit int) []Hit {
	tokens := Tokenize(query)
	if len(tokens) == 0 || index.averageLen == 0 {
		return nil
	}

	// weights maps each term to score to its discount: 1 for exact
	// tokens, prefixDiscount for prefix expansions of the last token.
	weights := make(map[string]float64)
	for _, token := range tokens {
		weights[token] = 1
	}
	last := tokens[len(tokens)-1]
	for _, term := range index.expand(last) {
		if _, exact := weights[term]; !exact {
			weights[term] = prefixDiscount
		}
	}

	var hits []Hit
	for position, id := range index.ids {
		if score := index.score(position, weights); score > 0 {
			hits = append(hits, Hit{ID: id, Score: score})
		}
	}
	slices.SortFunc(hits, func(left, right Hit) int {
		if byScore := cmp.Compare(right.Score, left.Score); byScore != 0 {
			return byScore
		}
		return strings.Compare(left.ID, right.ID)
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// expand returns the indexed terms that start with prefix.
func (index *Index) expand(prefix string) []string {
	start, _ := slices.BinarySearch(index.terms, prefix)
	var matches []string
	for _, term := range index.terms[start:] {
		if !strings.HasPrefix(term, prefix) {
			break
		}
		matches = append(matches, term)
	}
	return matches
}

func (index *Index) score(position int, weights map[string]float64) float64 {
	frequency := index.frequencies[position]
	length := float64(index.lengths[position])
	var score float64
	for term, weight := range weights {
		count := float64(frequency[term])
		if count == 0 {
			continue
		}
		saturation := count * (k1 + 1) / (count + k1*(1-b+b*length/index.averageLen))
		score += weight * index.idf[term] * saturation
	}
	return score
}

// Tokenize lowercases text and splits it into runs of letters and
// digits. Single-character runs are dropped.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, field := range fields {
		if len([]rune(field)) >= 2 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
