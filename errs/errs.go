// Package errs holds the error taxonomy shared by the storefront, the kitchen
// dashboard and the API client.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks a failed request: transport error or non-2xx answer.
	ErrNetwork = errors.New("network failure")
	// ErrMalformed marks a response body that could not be decoded.
	ErrMalformed = errors.New("malformed response")
	// ErrValidation marks a user action rejected before any state change.
	ErrValidation = errors.New("validation failure")
)

// ValidationError carries the user-facing reason an action was blocked.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool { return target == ErrNetwork }

// Message returns the user-facing text of err: the ValidationError message when
// there is one, the error text otherwise.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
