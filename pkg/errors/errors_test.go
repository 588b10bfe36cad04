package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidAnchor, "unknown anchor: %s", "middle")

	if err.Code != ErrCodeInvalidAnchor {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidAnchor)
	}
	if err.Message != "unknown anchor: middle" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown anchor: middle")
	}

	expected := "INVALID_ANCHOR: unknown anchor: middle"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrCodeOpenFailed, cause, "probe movie.mp4")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if got, want := err.Error(), "OPEN_FAILED: probe movie.mp4: exit status 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
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
			err:      New(ErrCodeSamplingFailed, "test"),
			code:     ErrCodeSamplingFailed,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeSamplingFailed, "test"),
			code:     ErrCodeOpenFailed,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("sample: %w", New(ErrCodeSamplingFailed, "inner")),
			code:     ErrCodeSamplingFailed,
			expected: true,
		},
		{
			name:     "outermost code wins",
			err:      Wrap(ErrCodeOpenFailed, New(ErrCodeCorruptMetadata, "inner"), "outer"),
			code:     ErrCodeOpenFailed,
			expected: true,
		},
		{
			name:     "joined errors",
			err:      fmt.Errorf("invalid options: %w", errors.Join(New(ErrCodeInvalidGrid, "a"), New(ErrCodeInvalidAnchor, "b"))),
			code:     ErrCodeInvalidAnchor,
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
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidGrid, "test"), ErrCodeInvalidGrid},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
	joined := errors.Join(New(ErrCodeInvalidGrid, "rows must be positive"), New(ErrCodeInvalidAnchor, "unknown anchor"))
	if got, want := UserMessage(joined), "rows must be positive\nunknown anchor"; got != want {
		t.Errorf("UserMessage(joined) = %q, want %q", got, want)
	}
}

func TestClassification(t *testing.T) {
	if !IsConfig(New(ErrCodeInvalidShrink, "x")) {
		t.Error("INVALID_SHRINK should be a configuration error")
	}
	if IsConfig(New(ErrCodeSamplingFailed, "x")) {
		t.Error("SAMPLING_FAILED is not a configuration error")
	}
	if !IsRecoverable(fmt.Errorf("open: %w", New(ErrCodeCorruptMetadata, "x"))) {
		t.Error("CORRUPT_METADATA should be recoverable")
	}
	if IsRecoverable(New(ErrCodeOpenFailed, "x")) {
		t.Error("OPEN_FAILED should not be recoverable")
	}
}
