// Package histogram builds and filters per-document word-frequency histograms.
//
// A [Histogram] maps a word to a non-negative weight: a raw count right after
// [Build], or a fraction after [Normalize]. Histograms are plain maps so that
// callers can inspect them directly; the filters in this package mutate them
// in place and only ever remove entries.
//
// # Lifecycle
//
// A comparison session builds one histogram per document once, then filters
// them repeatedly as the user asks. Before every render the live histograms
// are normalized into copies:
//
//	h1 := histogram.Build(text.Tokens(doc1))
//	h2 := histogram.Build(text.Tokens(doc2))
//	histogram.RetainSharedOnly(h1, h2)
//	n1, n2 := histogram.Normalize(h1), histogram.Normalize(h2)
//
// Normalizing a copy keeps the raw counts available, so a later filter
// followed by another render re-normalizes against the reduced total.
//
// # Empty operands
//
// A nil or empty histogram is a valid degenerate value. Every function here
// accepts it and produces an empty result or does nothing.
package histogram

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/matzehuels/wordcloud/pkg/text"
)

// Histogram maps words to their weight in one document.
type Histogram map[string]float64

// Entry is one word and its weight.
type Entry struct {
	Word  string  `json:"word"`
	Value float64 `json:"value"`
}

// Build counts every token. The first sighting of a word counts 1, each
// further sighting adds 1. Tokens are counted as-is (no case folding) and
// empty tokens are skipped. Build never returns nil.
func Build(tokens iter.Seq[string]) Histogram {
	h := make(Histogram)
	if tokens == nil {
		return h
	}
	for tok := range tokens {
		if tok == "" {
			continue
		}
		h[tok]++
	}
	return h
}

// BuildFromSlice is [Build] over a slice.
func BuildFromSlice(tokens []string) Histogram {
	return Build(slices.Values(tokens))
}

// FromFile reads the document at path and builds its histogram. Read
// failures carry [errors.ErrCodeSourceUnreadable].
//
// [errors.ErrCodeSourceUnreadable]: github.com/matzehuels/wordcloud/pkg/errors
func FromFile(path string) (Histogram, error) {
	tokens, err := text.TokenizeFile(path)
	if err != nil {
		return nil, err
	}
	return BuildFromSlice(tokens), nil
}

// Clone returns an independent copy of h. The clone of nil is an empty,
// non-nil histogram.
func (h Histogram) Clone() Histogram {
	out := make(Histogram, len(h))
	maps.Copy(out, h)
	return out
}

// Total returns the sum of all weights.
func (h Histogram) Total() float64 {
	var total float64
	for word, v := range h {
		mustNonNegative(word, v)
		total += v
	}
	return total
}

// Words returns the words of h in lexical order.
func (h Histogram) Words() []string {
	return slices.Sorted(maps.Keys(h))
}

// Top returns up to n entries ordered by descending weight, ties broken by
// word. A negative n returns every entry.
func (h Histogram) Top(n int) []Entry {
	entries := make([]Entry, 0, len(h))
	for w, v := range h {
		entries = append(entries, Entry{Word: w, Value: v})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Normalize returns a copy of h whose weights sum to 1.
//
// When h is empty or its total is zero the copy is returned unchanged. The
// argument is never modified.
func Normalize(h Histogram) Histogram {
	out := h.Clone()
	total := out.Total()
	if total == 0 {
		return out
	}
	for w, v := range out {
		out[w] = v / total
	}
	return out
}

// mustNonNegative panics on a negative weight. Build and the filters can
// never produce one, so a negative value means the map was corrupted by
// code outside this package.
func mustNonNegative(word string, v float64) {
	if v < 0 {
		panic(fmt.Sprintf("histogram: negative weight %v for %q", v, word))
	}
}
