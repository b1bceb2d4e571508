package histogram

import (
	"slices"
)

// All filters work in two phases: the removal set is computed first, then
// applied. Nothing is deleted from a map while it is being ranged over.

// RemoveWords deletes every word of words from h and returns how many
// entries were removed. Words absent from h are ignored.
func RemoveWords(h Histogram, words WordSet) int {
	removed := 0
	for w := range words {
		if _, ok := h[w]; ok {
			delete(h, w)
			removed++
		}
	}
	return removed
}

// RemoveInfrequentWords keeps the limit highest-weighted entries of h and
// returns how many entries were removed.
//
// Ties are kept: the weight at rank limit-1 of the descending weights is the
// threshold, and every entry weighing at least that much survives. When
// several words share the threshold weight, more than limit words remain.
// A limit below 1 is treated as 1.
func RemoveInfrequentWords(h Histogram, limit int) int {
	if len(h) == 0 {
		return 0
	}
	limit = max(limit, 1)
	if len(h) <= limit {
		return 0
	}

	values := make([]float64, 0, len(h))
	for _, v := range h {
		values = append(values, v)
	}
	slices.Sort(values)
	slices.Reverse(values)
	threshold := values[limit-1]

	drop := make(WordSet)
	for w, v := range h {
		if v < threshold {
			drop[w] = struct{}{}
		}
	}
	return RemoveWords(h, drop)
}

// RetainSharedOnly removes from both histograms every word that is not
// present in both. The same removal set is applied to each side; removing
// a word from the side that lacks it is a no-op.
func RetainSharedOnly(doc1, doc2 Histogram) int {
	drop := ExclusiveToEither(doc1, doc2)
	return RemoveWords(doc1, drop) + RemoveWords(doc2, drop)
}

// RemoveStopwords removes every stopword from both histograms. Matching is
// case-insensitive: a histogram word is dropped when its lowercase form is
// in stops.
func RemoveStopwords(doc1, doc2 Histogram, stops StopwordSet) int {
	if len(stops) == 0 {
		return 0
	}
	return RemoveWords(doc1, stops.matches(doc1)) + RemoveWords(doc2, stops.matches(doc2))
}

// RemoveStandardCommonWords loads the stopword list at path and removes its
// words from both histograms. An empty path selects [DefaultStopwords].
//
// If the list cannot be read the histograms are left untouched and an
// [errors.ErrCodeStopwordsUnreadable] error is returned; callers treat it
// as a warning.
func RemoveStandardCommonWords(doc1, doc2 Histogram, path string) (int, error) {
	stops := DefaultStopwords()
	if path != "" {
		var err error
		if stops, err = LoadStopwords(path); err != nil {
			return 0, err
		}
	}
	return RemoveStopwords(doc1, doc2, stops), nil
}
