package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidAction, "unknown action: %s", "shuffle")

	if err.Code != ErrCodeInvalidAction {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidAction)
	}

	if err.Message != "unknown action: shuffle" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown action: shuffle")
	}

	expected := "INVALID_ACTION: unknown action: shuffle"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeSourceUnreadable, cause, "read %s", "a.txt")

	if err.Code != ErrCodeSourceUnreadable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSourceUnreadable)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "SOURCE_UNREADABLE: read a.txt: permission denied"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeStopwordsUnreadable, "test"),
			code:     ErrCodeStopwordsUnreadable,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeSourceUnreadable,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("load doc1: %w", New(ErrCodeSourceUnreadable, "inner")),
			code:     ErrCodeSourceUnreadable,
			expected: true,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeRenderFailed, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeRenderFailed,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidFormat, "x")); got != ErrCodeInvalidFormat {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidFormat)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidAction, "unknown action"), "unknown action"},
		{"coded with cause", Wrap(ErrCodeSourceUnreadable, errors.New("no such file"), "read a.txt"), "read a.txt: no such file"},
		{"plain", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
