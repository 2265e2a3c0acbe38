// Package clierr defines structured error types for planner and timer operations.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for scripts consuming --json output.
package clierr

import (
	"errors"
	"fmt"
	"strconv"
)

// Error codes. Scripts match on these, so they never change once released.
const (
	TaskNotFound        = "TASK_NOT_FOUND"
	EmptyText           = "EMPTY_TEXT"
	InvalidRange        = "INVALID_RANGE"
	InvalidPriority     = "INVALID_PRIORITY"
	InvalidTime         = "INVALID_TIME"
	InvalidTaskID       = "INVALID_TASK_ID"
	NonPositiveDuration = "NON_POSITIVE_DURATION"
	NoTimeRemaining     = "NO_TIME_REMAINING"
	InvalidInput        = "INVALID_INPUT"
	ConfirmationReq     = "CONFIRMATION_REQUIRED"
	ConfigExists        = "CONFIG_ALREADY_EXISTS"
	InvalidGroupBy      = "INVALID_GROUP_BY"
	InternalError       = "INTERNAL_ERROR"
)

// Error represents a structured error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Is reports whether target is an *Error with the same code, so callers can
// match on a code with errors.Is(err, &clierr.Error{Code: clierr.TaskNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// SilentError signals an exit code without additional output.
// Used by batch operations where results are already written to stdout.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
