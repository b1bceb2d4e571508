package text

import (
	"bufio"
	"io"
	"iter"
	"os"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// ReadFile reads the whole document at path.
//
// Any failure (missing file, permission, directory, read error) is reported
// as an [errors.ErrCodeSourceUnreadable] error and no partial content is
// returned. The file handle is closed before ReadFile returns.
func ReadFile(path string) (string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return "", errors.Wrap(errors.ErrCodeSourceUnreadable, err, "cannot read %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSourceUnreadable, err, "cannot read %q", path)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSourceUnreadable, err, "cannot read %q", path)
	}
	return string(data), nil
}

// TokenizeFile reads path and returns its tokens.
func TokenizeFile(path string) ([]string, error) {
	content, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Tokenize(content), nil
}

// ScanTokens returns a single-use sequence over the words read from r.
// Scanning stops at the first read error, which is stored in *errp.
func ScanTokens(r io.Reader, errp *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		s := bufio.NewScanner(r)
		s.Split(ScanWords)
		for s.Scan() {
			if !yield(s.Text()) {
				return
			}
		}
		if errp != nil {
			*errp = s.Err()
		}
	}
}
