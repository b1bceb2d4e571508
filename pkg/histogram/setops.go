package histogram

import (
	"maps"
	"slices"
)

// WordSet is a set of words.
type WordSet map[string]struct{}

// NewWordSet returns a set holding words.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Contains reports whether w is in s.
func (s WordSet) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// Sorted returns the members of s in lexical order.
func (s WordSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Union returns the words present in either histogram.
func Union(h1, h2 Histogram) WordSet {
	out := make(WordSet, max(len(h1), len(h2)))
	for w := range h1 {
		out[w] = struct{}{}
	}
	for w := range h2 {
		out[w] = struct{}{}
	}
	return out
}

// SharedWords returns the words present in both histograms.
func SharedWords(h1, h2 Histogram) WordSet {
	small, large := h1, h2
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(WordSet)
	for w := range small {
		if _, ok := large[w]; ok {
			out[w] = struct{}{}
		}
	}
	return out
}

// ExclusiveToEither returns the words present in exactly one histogram.
func ExclusiveToEither(h1, h2 Histogram) WordSet {
	out := make(WordSet)
	for w := range h1 {
		if _, ok := h2[w]; !ok {
			out[w] = struct{}{}
		}
	}
	for w := range h2 {
		if _, ok := h1[w]; !ok {
			out[w] = struct{}{}
		}
	}
	return out
}
