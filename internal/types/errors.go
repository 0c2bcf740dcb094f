package types

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("unauthenticated")
	ErrNotFound       = errors.New("not found")
	ErrTransport      = errors.New("notification transport failed")
)

// ValidationError carries field-keyed messages for a 422 response.
type ValidationError struct {
	Errors map[string][]string `json:"errors"`
	fields []string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	if _, ok := e.Errors[field]; !ok {
		e.fields = append(e.fields, field)
	}
	e.Errors[field] = append(e.Errors[field], message)
	return e
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Message is the first error, with a count of the remaining ones.
func (e *ValidationError) Message() string {
	if len(e.fields) == 0 {
		return "The given data was invalid."
	}

	total := 0
	for _, messages := range e.Errors {
		total += len(messages)
	}

	first := e.Errors[e.fields[0]][0]
	switch remaining := total - 1; {
	case remaining == 1:
		return fmt.Sprintf("%s (and 1 more error)", first)
	case remaining > 1:
		return fmt.Sprintf("%s (and %d more errors)", first, remaining)
	default:
		return first
	}
}

func (e *ValidationError) Error() string {
	return e.Message()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
