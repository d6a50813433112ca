package script

import (
	"errors"
	"fmt"
)

// Errors returned while running scripts.
var (
	// ErrUnknownOp indicates a step whose op is not supported.
	ErrUnknownOp = errors.New("unknown op")

	// ErrMissingField indicates a step without a field its op requires.
	ErrMissingField = errors.New("missing field")

	// ErrExpectationFailed indicates an expect step that did not match.
	ErrExpectationFailed = errors.New("expectation failed")
)

// StepError records the step a script failed at.
type StepError struct {
	// Index is the zero-based position of the step.
	Index int
	// Op is the step's op.
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
