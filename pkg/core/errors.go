package core

import (
	"errors"
	"fmt"
)

// Predefined errors for common failure scenarios.
var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownProvider indicates an unrecognized storage provider name.
	ErrUnknownProvider = errors.New("unknown storage provider")

	// ErrRequestInFlight indicates that a call for the same logical action is
	// already outstanding. The core rejects the second call rather than
	// relying on the caller to serialize.
	ErrRequestInFlight = errors.New("request already in flight")
)

// SessionError wraps errors with operation context.
//
// It records which client operation failed, making error messages more
// informative for debugging.
//
// Example:
//
//	err := &SessionError{
//	    Op:  "AnalyzeFood",
//	    Err: llm.ErrMissingAPIKey,
//	}
//	// Error() returns: "cyclecare: AnalyzeFood: missing api credential"
type SessionError struct {
	// Op is the name of the operation that failed.
	Op string

	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message.
//
// The format is: "cyclecare: <Op>: <Err>"
func (e *SessionError) Error() string {
	return fmt.Sprintf("cyclecare: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
//
// This allows using errors.Is() and errors.As() with SessionError.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError wrapping the given error.
//
// If err is nil, returns nil. This allows safe error wrapping:
//
//	if err != nil {
//	    return NewSessionError("AnalyzeFood", err)
//	}
//
// Parameters:
//   - op: Name of the operation (e.g., "AnalyzeFood", "SendMessage")
//   - err: The underlying error to wrap
//
// Returns a SessionError, or nil if err is nil.
func NewSessionError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SessionError{
		Op:  op,
		Err: err,
	}
}
