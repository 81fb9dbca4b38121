// Package errors provides structured error types for gridgen.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Aggregation of several failures found in one input
//
// # Error Codes
//
//   - GRAMMAR_ERROR: the query text does not follow the grid grammar
//   - UNSUPPORTED: the query uses syntax that is recognized but not compiled
//   - INVALID_*: other input validation failures
//   - UNKNOWN_LAYOUT: a named layout is not in the catalogue
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeGrammar, "row %d is empty", row)
//	if errors.Is(err, errors.ErrCodeGrammar) {
//	    // Report the malformed query
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Query compilation errors
	ErrCodeGrammar         Code = "GRAMMAR_ERROR"
	ErrCodeUnsupported     Code = "UNSUPPORTED"
	ErrCodeInvalidSelector Code = "INVALID_SELECTOR"

	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeUnknownLayout Code = "UNKNOWN_LAYOUT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

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

// Is reports whether err, or any error aggregated into it, has the given code.
func Is(err error, code Code) bool {
	for _, e := range multierr.Errors(err) {
		var ce *Error
		if errors.As(e, &ce) && ce.Code == code {
			return true
		}
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// For aggregated errors the code of the first coded error is returned.
// Returns empty string if no *Error is found.
func GetCode(err error) Code {
	for _, e := range multierr.Errors(err) {
		var ce *Error
		if errors.As(e, &ce) {
			return ce.Code
		}
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// Aggregated errors are joined with "; ".
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	errs := multierr.Errors(err)
	if len(errs) > 1 {
		msg := ""
		for i, e := range errs {
			if i > 0 {
				msg += "; "
			}
			msg += UserMessage(e)
		}
		return msg
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Combine aggregates errs into a single error, dropping nils.
// It returns nil when every element is nil.
func Combine(errs ...error) error {
	return multierr.Combine(errs...)
}

// List returns the individual errors aggregated in err.
func List(err error) []error {
	return multierr.Errors(err)
}
