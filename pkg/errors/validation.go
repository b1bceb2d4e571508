package errors

import (
	"strings"
	"unicode"
)

// maxPathLen bounds the length of document and stopword paths.
const maxPathLen = 4096

// ValidatePath validates a document or resource path supplied by the user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// Existence is not checked here; an unreadable path surfaces as
// [ErrCodeSourceUnreadable] when the file is opened.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > maxPathLen {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLen)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	return nil
}
