package generate

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoTransport is returned when a chain has no transports.
	ErrNoTransport = errors.New("generate: no transport available")

	// ErrEmptyPrompt is returned for a request with no prompt text.
	ErrEmptyPrompt = errors.New("generate: empty prompt")
)

// TransportError wraps an error with transport context.
type TransportError struct {
	Transport string
	Err       error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("generate [%s]: %v", e.Transport, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with transport context.
func WrapError(transport string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Transport: transport, Err: err}
}

// APIError represents an error response from the generation endpoint.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the API.
	Message string

	// Transport identifies which transport returned the error.
	Transport string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("generate [%s]: API error %d: %s",
		e.Transport, e.StatusCode, e.Message)
}

// ChainError aggregates errors from all transports in a chain.
type ChainError struct {
	Errors []error
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	if len(e.Errors) == 0 {
		return "generate chain: no errors recorded"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("generate chain: %v", e.Errors[0])
	}
	return fmt.Sprintf("generate chain: all %d transports failed, last error: %v",
		len(e.Errors), e.Errors[len(e.Errors)-1])
}

// Unwrap returns the last error in the chain.
func (e *ChainError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[len(e.Errors)-1]
}
