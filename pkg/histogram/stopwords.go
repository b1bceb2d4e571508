package histogram

import (
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/text"
)

//go:embed stopwords_en.txt
var defaultStopwordList string

// StopwordSet holds lowercase, trimmed stopwords. It is read-only once loaded.
type StopwordSet map[string]struct{}

// Contains reports whether word, lower-cased, is a stopword.
func (s StopwordSet) Contains(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// matches returns the words of h that are stopwords.
func (s StopwordSet) matches(h Histogram) WordSet {
	out := make(WordSet)
	for w := range h {
		if s.Contains(w) {
			out[w] = struct{}{}
		}
	}
	return out
}

// ParseStopwords reads a stopword list from r. Words may be separated by
// newlines, whitespace or any other delimiter of [text.Tokens].
func ParseStopwords(r io.Reader) (StopwordSet, error) {
	set := make(StopwordSet)
	var err error
	for tok := range text.ScanTokens(r, &err) {
		w := strings.TrimSpace(strings.ToLower(tok))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

// LoadStopwords reads the stopword list at path.
func LoadStopwords(path string) (StopwordSet, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStopwordsUnreadable, err, "cannot read stopwords %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStopwordsUnreadable, err, "cannot read stopwords %q", path)
	}
	defer f.Close()

	set, err := ParseStopwords(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStopwordsUnreadable, err, "cannot read stopwords %q", path)
	}
	return set, nil
}

// DefaultStopwords returns the built-in English stopword list.
func DefaultStopwords() StopwordSet {
	set, _ := ParseStopwords(strings.NewReader(defaultStopwordList))
	return set
}
