package text

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"hyphen and space delimit", "a-b c'd  e", []string{"a", "b", "c'd", "e"}},
		{"empty", "", []string{}},
		{"delimiters only", "  --- 123 !!", []string{}},
		{"case kept", "The the THE", []string{"The", "the", "THE"}},
		{"digits split", "abc123def", []string{"abc", "def"}},
		{"leading apostrophe", "'tis rock'n'roll", []string{"'tis", "rock'n'roll"}},
		{"non-ascii delimits", "naïve café", []string{"na", "ve", "caf"}},
		{"newlines and tabs", "one\ntwo\tthree\r\n", []string{"one", "two", "three"}},
		{"trailing word", "end", []string{"end"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			for _, tok := range got {
				if tok == "" {
					t.Errorf("Tokenize(%q) yielded an empty token", tt.input)
				}
			}
		})
	}
}

func TestTokensRestartable(t *testing.T) {
	seq := Tokens("to be or not to be")

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("second pass = %q, want %q", second, first)
	}
	if len(first) != 6 {
		t.Errorf("len = %d, want 6", len(first))
	}
}

func TestTokensEarlyStop(t *testing.T) {
	var got []string
	for tok := range Tokens("alpha beta gamma delta") {
		got = append(got, tok)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []string{"alpha", "beta"}) {
		t.Errorf("got %q, want [alpha beta]", got)
	}
}

func TestScanTokensMatchesTokens(t *testing.T) {
	input := "It's a truth -- universally acknowledged, that a single man... 1813"
	var err error
	got := slices.Collect(ScanTokens(strings.NewReader(input), &err))
	if err != nil {
		t.Fatalf("ScanTokens() error: %v", err)
	}
	want := Tokenize(input)
	if !slices.Equal(got, want) {
		t.Errorf("ScanTokens() = %q, want %q", got, want)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("the cat the"), 0644); err != nil {
		t.Fatal(err)
	}

	toks, err := TokenizeFile(path)
	if err != nil {
		t.Fatalf("TokenizeFile() error: %v", err)
	}
	if !slices.Equal(toks, []string{"the", "cat", "the"}) {
		t.Errorf("TokenizeFile() = %q", toks)
	}
}

func TestReadFileUnreadable(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.txt")},
		{"directory", dir},
		{"empty path", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := ReadFile(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeSourceUnreadable) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeSourceUnreadable)
			}
			if content != "" {
				t.Errorf("content = %q, want empty", content)
			}
		})
	}
}
