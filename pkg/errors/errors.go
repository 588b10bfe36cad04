// Package errors provides structured error types for contactsheet.
//
// Codes follow the failure taxonomy of the sheet pipeline:
//   - INVALID_*: configuration errors, reported before any video is opened
//   - OPEN_FAILED, CORRUPT_METADATA, FILE_NOT_FOUND: resource acquisition
//     failures, fatal for one input file but not for a batch
//   - SAMPLING_FAILED: a requested time mark yielded no decodable frame
//   - INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidAnchor, "unknown anchor %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidAnchor) {
//	    // configuration problem
//	}
//
//	err := errors.Wrap(errors.ErrCodeOpenFailed, cause, "open %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidGrid   Code = "INVALID_GRID"
	ErrCodeInvalidShrink Code = "INVALID_SHRINK"
	ErrCodeInvalidAnchor Code = "INVALID_ANCHOR"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidMode   Code = "INVALID_MODE"

	// Resource acquisition errors
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeOpenFailed      Code = "OPEN_FAILED"
	ErrCodeCorruptMetadata Code = "CORRUPT_METADATA"

	// Sampling errors
	ErrCodeSamplingFailed Code = "SAMPLING_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code. Along a chain of wrapped
// errors the outermost *Error decides; errors joined with errors.Join match if
// any of them does.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code == code
		}
		switch x := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				if Is(inner, code) {
					return true
				}
			}
			return false
		case interface{ Unwrap() error }:
			err = x.Unwrap()
		default:
			return false
		}
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// Joined errors give one line per branch. Other errors are returned as is.
func UserMessage(err error) string {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		branches := j.Unwrap()
		msgs := make([]string, 0, len(branches))
		for _, b := range branches {
			msgs = append(msgs, UserMessage(b))
		}
		return strings.Join(msgs, "\n")
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidGrid, ErrCodeInvalidShrink,
		ErrCodeInvalidAnchor, ErrCodeInvalidColor, ErrCodeInvalidMode:
		return true
	}
	return false
}

// IsRecoverable reports whether err can be retried after preprocessing the
// input, such as stripping corrupt container metadata.
func IsRecoverable(err error) bool {
	return Is(err, ErrCodeCorruptMetadata)
}
