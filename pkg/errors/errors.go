// Package errors provides structured error types for the ytcrawl application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP surfaces
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input and configuration validation failures
//   - NOT_FOUND: Resource not found
//   - NETWORK_ERROR, RATE_LIMITED: Transport-level failures
//   - UNAUTHORIZED: Missing or rejected API key
//   - API_ERROR: The remote API failed during a crawl
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown search mode: %s", mode)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeAPI, origErr, "related search for %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input and configuration validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidOption   Code = "INVALID_OPTION"
	ErrCodeInvalidEncoding Code = "INVALID_ENCODING"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeVideoNotFound Code = "VIDEO_NOT_FOUND"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Authentication errors
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	// Remote API failure during a crawl
	ErrCodeAPI Code = "API_ERROR"

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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for a coded error with a matching code.
func Is(err error, code Code) bool {
	got := GetCode(err)
	return got != "" && got == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the chain carries no coded error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return ErrCodeRateLimited
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError is a rate-limited API response carrying the server's
// Retry-After hint. [GetCode] resolves it to ErrCodeRateLimited, so the
// usual code checks apply; the hint lets the HTTP surface forward a
// Retry-After header to its own clients.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying; 0 when the API gave none
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "rate limited"
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %ds)", msg, e.RetryAfter)
	}
	return msg
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}

// RetryAfter returns the retry hint in seconds carried by a rate-limited
// error anywhere in err's chain, or 0 when there is none.
func RetryAfter(err error) int {
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.RetryAfter
	}
	return 0
}
