// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies command errors.
type ErrorCategory string

const (
	// CategoryValidation indicates bad input: unknown flags, wrong
	// argument count, an invalid config file. Fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced file or record does not
	// exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryConflict indicates the operation conflicts with existing
	// state, such as an output file that already exists.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryInternal indicates an unexpected failure: I/O errors,
	// corrupt data the tool itself wrote, bugs.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error with an optional hint telling the
// user what to do next. It wraps the underlying error so errors.Is and
// errors.As see the full chain.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is printed after the message, separated by a blank line.
	Hint string
}

// Error returns the message followed by the hint, if any.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Exit statuses by category. Uncategorized errors exit 1.
const (
	exitFailure    = 1
	exitValidation = 2
	exitNotFound   = 3
	exitConflict   = 4
)

// ExitCode returns the process exit status for err: 0 for nil, the
// code of an ExitError, a per-category status for a ToolError, and 1
// otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		switch toolErr.Category {
		case CategoryValidation:
			return exitValidation
		case CategoryNotFound:
			return exitNotFound
		case CategoryConflict:
			return exitConflict
		}
	}
	return exitFailure
}
