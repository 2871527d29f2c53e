// Package errors provides structured error types for the gridstack engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and stores
//   - Machine-readable error codes for programmatic handling
//   - A single aggregated error for structural validation failures
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input, payload, option or configuration validation failures
//   - MISSING_*: Required data that could not be derived
//   - NOT_FOUND: Resource not found (stores only; the engine treats unknown ids as no-ops)
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "breakpoint %q has no cols", name)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "failed to load %s", key)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidLayout  Code = "INVALID_LAYOUT"
	ErrCodeInvalidCommand Code = "INVALID_COMMAND"
	ErrCodeInvalidOptions Code = "INVALID_OPTIONS"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Responsive resolution errors
	ErrCodeMissingLayout Code = "MISSING_LAYOUT"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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
// It unwraps the error chain looking for an *Error or *ValidationError
// with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// Issues returns the validation issues carried by err, or nil.
func Issues(err error) []Issue {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Issues
	}
	return nil
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Summary()
	}
	return err.Error()
}
