// Package text splits documents into word tokens.
//
// A word is a maximal run of ASCII letters and apostrophes. Everything else
// (digits, whitespace, hyphens, punctuation and any non-ASCII byte) is a
// delimiter, so "a-b c'd" yields "a", "b" and "c'd". Letters keep their case;
// case folding is left to callers that need it, such as stopword matching.
//
// Tokens never have zero length: runs of consecutive delimiters produce no
// empty tokens.
package text

import (
	"bufio"
	"iter"
)

// isWordByte reports whether b belongs to a word.
func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '\''
}

// Tokens returns a lazy sequence over the words of text.
//
// The sequence is restartable: every range over it scans text from the
// beginning and yields the same tokens. Tokens are substrings of text and do
// not allocate.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i := 0; i < len(text); i++ {
			if isWordByte(text[i]) {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				if !yield(text[start:i]) {
					return
				}
				start = -1
			}
		}
		if start >= 0 {
			yield(text[start:])
		}
	}
}

// Tokenize collects [Tokens] into a slice. An empty text yields an empty,
// non-nil slice.
func Tokenize(text string) []string {
	out := make([]string, 0)
	for tok := range Tokens(text) {
		out = append(out, tok)
	}
	return out
}

// ScanWords is a [bufio.SplitFunc] that applies the same delimiter policy as
// [Tokens] to a stream.
func ScanWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && !isWordByte(data[start]) {
		start++
	}
	for i := start; i < len(data); i++ {
		if !isWordByte(data[i]) {
			return i + 1, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

var _ bufio.SplitFunc = ScanWords
