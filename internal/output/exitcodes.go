package output

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError reports a problem with the invocation: a bad flag value, an
// unknown page, an unknown dialect.
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewUserErrorf is NewUserError with formatting. A %w verb sets the cause.
func NewUserErrorf(format string, args ...any) *ExitError {
	err := fmt.Errorf(format, args...)
	return &ExitError{Code: ExitUserError, Message: err.Error(), Cause: errors.Unwrap(err)}
}

// NewSystemError reports a failure outside the user's control, such as an
// unreadable store.
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying
// cause. The cause's text is appended to the message.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	if cause != nil {
		message = message + ": " + cause.Error()
	}
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewConflictError reports an output path that already exists.
func NewConflictError(message string) *ExitError {
	return &ExitError{Code: ExitConflict, Message: message}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
