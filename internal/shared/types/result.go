package types

import "fmt"

// ErrorKind classifies operation failures so callers can branch on them.
type ErrorKind string

const (
	// ErrNotFound indicates a missing source, archive, or file.
	ErrNotFound ErrorKind = "not_found"

	// ErrNotADirectory indicates a directory operation hit a regular file.
	ErrNotADirectory ErrorKind = "not_a_directory"

	// ErrIsADirectory indicates a file operation hit a directory.
	ErrIsADirectory ErrorKind = "is_a_directory"

	// ErrIOFailure indicates an underlying read/write/copy error.
	ErrIOFailure ErrorKind = "io_failure"

	// ErrInvalidArchive indicates a malformed archive container.
	ErrInvalidArchive ErrorKind = "invalid_archive"

	// ErrInvalidInput indicates missing or malformed operation parameters.
	ErrInvalidInput ErrorKind = "invalid_input"
)

// Error is a structured operation failure: a kind for branching, a message
// with path and phase context, and the underlying cause when one exists.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Cause   string    `json:"cause,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError creates a structured error, capturing cause when non-nil.
func NewError(kind ErrorKind, message string, cause error) *Error {
	e := &Error{Kind: kind, Message: message}
	if cause != nil {
		e.Cause = cause.Error()
	}
	return e
}

// Result represents a service execution result
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *Error                 `json:"error,omitempty"`
}
