package knapsack

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel wrapped by every precondition failure:
// mismatched vector lengths, non-positive or non-finite entries, and
// non-positive DP resolution. Degenerate inputs (zero capacity, empty
// vectors, zero generations) are not errors; they yield empty selections.
var ErrInvalidInput = errors.New("invalid input")

// Error is a solver error with component and operation context that can
// be wrapped with additional information.
type Error struct {
	// Message describes the error that occurred.
	Message string
	// Op is the operation that caused the error.
	Op string
	// Component is the component where the error occurred.
	Component string
	// Err is the underlying error, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var prefix string
	switch {
	case e.Component != "" && e.Op != "":
		prefix = fmt.Sprintf("%s: %s", e.Component, e.Op)
	case e.Component != "":
		prefix = e.Component
	case e.Op != "":
		prefix = e.Op
	}

	if prefix != "" {
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithOperation adds operation context to the error.
func (e *Error) WithOperation(op string) *Error {
	e.Op = op
	return e
}

// WithComponent adds component context to the error.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// NewInvalidInput creates a precondition-violation error. Callers can
// detect it with IsInvalidInput regardless of added context.
func NewInvalidInput(message string) *Error {
	return &Error{
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// NewInvalidInputf creates a precondition-violation error with a
// formatted message.
func NewInvalidInputf(format string, args ...interface{}) *Error {
	return NewInvalidInput(fmt.Sprintf(format, args...))
}

// IsInvalidInput reports whether err is (or wraps) a precondition
// violation.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
