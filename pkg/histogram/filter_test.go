package histogram

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func TestRemoveWords(t *testing.T) {
	h := Histogram{"a": 1, "b": 2, "c": 3}

	removed := RemoveWords(h, NewWordSet("a", "c", "missing"))
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if !maps.Equal(h, Histogram{"b": 2}) {
		t.Errorf("h = %v, want map[b:2]", h)
	}

	var nilHist Histogram
	if n := RemoveWords(nilHist, NewWordSet("a")); n != 0 {
		t.Errorf("RemoveWords(nil) = %d, want 0", n)
	}
}

func TestRemoveInfrequentWords(t *testing.T) {
	tests := []struct {
		name  string
		h     Histogram
		limit int
		want  []string
	}{
		{
			name:  "tie at cutoff keeps both",
			h:     Histogram{"a": 5, "b": 5, "c": 3, "d": 1},
			limit: 2,
			want:  []string{"a", "b"},
		},
		{
			name:  "tie straddles cutoff",
			h:     Histogram{"a": 9, "b": 4, "c": 4, "d": 4, "e": 1},
			limit: 2,
			want:  []string{"a", "b", "c", "d"},
		},
		{
			name:  "strict top",
			h:     Histogram{"a": 4, "b": 3, "c": 2, "d": 1},
			limit: 3,
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "limit above size",
			h:     Histogram{"a": 1, "b": 2},
			limit: 100,
			want:  []string{"a", "b"},
		},
		{
			name:  "zero limit behaves as one",
			h:     Histogram{"a": 1, "b": 2, "c": 3},
			limit: 0,
			want:  []string{"c"},
		},
		{
			name:  "negative limit behaves as one",
			h:     Histogram{"a": 1, "b": 2, "c": 3},
			limit: -4,
			want:  []string{"c"},
		},
		{
			name:  "all equal",
			h:     Histogram{"a": 1, "b": 1, "c": 1},
			limit: 1,
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "empty",
			h:     Histogram{},
			limit: 2,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RemoveInfrequentWords(tt.h, tt.limit)
			if got := tt.h.Words(); !slices.Equal(got, tt.want) {
				t.Errorf("words = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoveInfrequentWordsNeverDropsTies(t *testing.T) {
	h := Histogram{"a": 5, "b": 5, "c": 3, "d": 1}
	RemoveInfrequentWords(h, 2)

	for _, w := range []string{"a", "b"} {
		if _, ok := h[w]; !ok {
			t.Errorf("word %q at the cutoff value was dropped", w)
		}
	}
}

func TestRemoveInfrequentWordsRepeatedHalving(t *testing.T) {
	h := make(Histogram)
	for i := range 40 {
		h[string(rune('A'+i%26))+string(rune('a'+i/26))] = float64(i + 1)
	}

	for limit := 32; limit >= 1; limit /= 2 {
		RemoveInfrequentWords(h, limit)
		if len(h) > limit {
			t.Fatalf("limit %d: %d words remain with distinct values", limit, len(h))
		}
	}
	if len(h) != 1 {
		t.Errorf("final size = %d, want 1", len(h))
	}
}

func TestRetainSharedOnly(t *testing.T) {
	doc1 := Histogram{"x": 1, "y": 2}
	doc2 := Histogram{"y": 3, "z": 4}

	RetainSharedOnly(doc1, doc2)

	if !slices.Equal(doc1.Words(), []string{"y"}) {
		t.Errorf("doc1 = %v, want only y", doc1)
	}
	if !slices.Equal(doc2.Words(), []string{"y"}) {
		t.Errorf("doc2 = %v, want only y", doc2)
	}
	if doc1["y"] != 2 || doc2["y"] != 3 {
		t.Errorf("shared counts changed: %v %v", doc1, doc2)
	}
}

func TestRetainSharedOnlyDisjoint(t *testing.T) {
	doc1 := Histogram{"a": 1}
	doc2 := Histogram{"b": 1}

	if removed := RetainSharedOnly(doc1, doc2); removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if len(doc1) != 0 || len(doc2) != 0 {
		t.Errorf("doc1 = %v, doc2 = %v, want both empty", doc1, doc2)
	}

	// Filtering emptied histograms is a no-op.
	RetainSharedOnly(doc1, doc2)
	RemoveInfrequentWords(doc1, 3)
	RemoveStopwords(doc1, doc2, DefaultStopwords())
}

func TestRemoveStopwordsCaseInsensitive(t *testing.T) {
	doc1 := Histogram{"The": 3, "whale": 2, "and": 1}
	doc2 := Histogram{"the": 1, "sea": 4}

	RemoveStopwords(doc1, doc2, StopwordSet{"the": {}, "and": {}})

	if !slices.Equal(doc1.Words(), []string{"whale"}) {
		t.Errorf("doc1 = %v", doc1)
	}
	if !slices.Equal(doc2.Words(), []string{"sea"}) {
		t.Errorf("doc2 = %v", doc2)
	}
}

func TestRemoveStandardCommonWords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "common.txt")
	if err := os.WriteFile(path, []byte("The\n  AND \nof"), 0644); err != nil {
		t.Fatal(err)
	}

	doc1 := Histogram{"the": 1, "ship": 1, "of": 2}
	doc2 := Histogram{"and": 1, "storm": 1}

	removed, err := RemoveStandardCommonWords(doc1, doc2, path)
	if err != nil {
		t.Fatalf("RemoveStandardCommonWords() error: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	if !slices.Equal(doc1.Words(), []string{"ship"}) || !slices.Equal(doc2.Words(), []string{"storm"}) {
		t.Errorf("doc1 = %v, doc2 = %v", doc1, doc2)
	}
}

func TestRemoveStandardCommonWordsUnreadable(t *testing.T) {
	doc1 := Histogram{"the": 1}
	doc2 := Histogram{"the": 2}

	removed, err := RemoveStandardCommonWords(doc1, doc2, filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, errors.ErrCodeStopwordsUnreadable) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeStopwordsUnreadable)
	}
	if removed != 0 || len(doc1) != 1 || len(doc2) != 1 {
		t.Errorf("histograms changed on failure: %v %v", doc1, doc2)
	}
}

func TestRemoveStandardCommonWordsDefaultList(t *testing.T) {
	doc1 := Histogram{"the": 1, "whale": 1}
	doc2 := Histogram{"of": 1, "sea": 1}

	if _, err := RemoveStandardCommonWords(doc1, doc2, ""); err != nil {
		t.Fatalf("RemoveStandardCommonWords() error: %v", err)
	}
	if !slices.Equal(doc1.Words(), []string{"whale"}) || !slices.Equal(doc2.Words(), []string{"sea"}) {
		t.Errorf("doc1 = %v, doc2 = %v", doc1, doc2)
	}
}
