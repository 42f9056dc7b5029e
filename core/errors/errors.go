// Package errors provides the error types of the markdown2html command and
// maps them to exit codes and user-facing diagnostics.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrUsage indicates the command was invoked with the wrong arguments
	ErrUsage = errors.New("usage error")
	// ErrNotFound indicates an input file does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates an argument failed validation
	ErrInvalidInput = errors.New("invalid input")
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// UsageError reports a malformed invocation. Its message is the usage line.
type UsageError struct {
	Usage string // Usage line shown to the user
	Err   error  // Underlying parse error, if any
}

func (e *UsageError) Error() string {
	return e.Usage
}

func (e *UsageError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUsage
}

// MissingInputError reports an input path that does not exist.
type MissingInputError struct {
	Path string // Path as given on the command line
	Err  error  // Underlying stat error, if any
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("Missing %s", e.Path)
}

func (e *MissingInputError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Argument that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewUsage creates a UsageError
func NewUsage(usage string, err error) *UsageError {
	return &UsageError{Usage: usage, Err: err}
}

// NewMissingInput creates a MissingInputError
func NewMissingInput(path string, err error) *MissingInputError {
	return &MissingInputError{Path: path, Err: err}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// ExitCode returns the process exit status for err: ExitOK for nil and
// ExitFailure for everything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return ExitFailure
}

// UserMessage returns the single diagnostic line written to stderr for err.
// Usage and missing-input errors print their message verbatim; anything else
// is prefixed with "Error: ". A nil error yields "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return usage.Error()
	}
	var missing *MissingInputError
	if errors.As(err, &missing) {
		return missing.Error()
	}
	return "Error: " + err.Error()
}
