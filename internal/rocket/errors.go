package rocket

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("rocket: invalid input")
	ErrIntegrationFailure = errors.New("rocket: integration failed")
)

// InputError names the field that did not parse.
type InputError struct {
	Field string
	Text  string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s %q is not a number", ErrInvalidInput, e.Field, e.Text)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// IntegrationError carries the solver's own description of what went wrong.
type IntegrationError struct {
	Message string
	Cause   error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrIntegrationFailure, e.Message)
}

func (e *IntegrationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrIntegrationFailure}
	}
	return []error{ErrIntegrationFailure, e.Cause}
}
