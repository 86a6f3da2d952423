package llm

import (
	"errors"
	"fmt"
)

// Predefined errors for the expected inference failure modes.
//
// The AI clients return these (or a *ServiceError) for every expected
// failure; only programming errors propagate as anything else. Callers
// branch with errors.Is / errors.As rather than matching strings.
var (
	// ErrMissingAPIKey indicates that no API credential is configured.
	// Raised before any network attempt is made.
	ErrMissingAPIKey = errors.New("missing api credential")

	// ErrEmptyResponse indicates the endpoint responded successfully but the
	// reply carried no text payload.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrMalformedResponse indicates the endpoint responded successfully but
	// the payload was not valid where structure was required.
	ErrMalformedResponse = errors.New("malformed model response")
)

// ServiceError indicates a non-success status from the inference endpoint.
//
// Message carries the best-available detail: the message parsed from the
// error body when the endpoint returned one, else a generic description.
type ServiceError struct {
	// StatusCode is the HTTP status returned by the endpoint (0 if the
	// request never produced a status, e.g. a transport failure).
	StatusCode int

	// Message is the human-readable failure detail.
	Message string
}

// Error returns a formatted error message.
func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inference service error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("inference service error: %s", e.Message)
}

// NewServiceError creates a ServiceError with the given status and message.
func NewServiceError(statusCode int, message string) *ServiceError {
	if message == "" {
		message = "request failed"
	}
	return &ServiceError{StatusCode: statusCode, Message: message}
}
