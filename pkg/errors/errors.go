// Package errors provides structured error types for the birch tools.
//
// This package defines error codes and types that enable:
//   - Consistent error reporting across the CLI and the pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *NOT_FOUND: Missing nodes or files
//   - DUPLICATE_ID, CYCLE: Rejected tree mutations
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap tree errors, keeping their classification
//	err := errors.Wrap(errors.FromTree(origErr), origErr, "detach %s", path)
package errors

import (
	"errors"
	"fmt"

	"github.com/birchtree/birch/pkg/tree"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeInvalidQuery    Code = "INVALID_QUERY"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Rejected tree mutations
	ErrCodeDuplicateID Code = "DUPLICATE_ID"
	ErrCodeCycle       Code = "CYCLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
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
// For *Error types, returns the message without the code prefix, followed
// by the cause if there is one. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// treeCodes maps tree sentinels to codes, checked in order.
var treeCodes = []struct {
	err  error
	code Code
}{
	{tree.ErrNotFound, ErrCodeNotFound},
	{tree.ErrDuplicateID, ErrCodeDuplicateID},
	{tree.ErrCycle, ErrCodeCycle},
	{tree.ErrForeignNode, ErrCodeInvalidArgument},
	{tree.ErrInvalidArgument, ErrCodeInvalidArgument},
	{tree.ErrAlreadyRoot, ErrCodeInvalidArgument},
	{tree.ErrInconsistent, ErrCodeInternal},
}

// FromTree classifies an error returned by package tree. An existing *Error
// keeps its code; unknown errors map to ErrCodeInternal.
func FromTree(err error) Code {
	if c := GetCode(err); c != "" {
		return c
	}
	for _, tc := range treeCodes {
		if errors.Is(err, tc.err) {
			return tc.code
		}
	}
	return ErrCodeInternal
}
