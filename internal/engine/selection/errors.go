package selection

import "errors"

// Errors returned by selection operations.
var (
	// ErrInvalidArgument indicates a malformed offset or an empty range collection.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange indicates an index outside [0, RangeCount()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotFound indicates a range that is not one of the current ranges.
	ErrNotFound = errors.New("range not found")

	// ErrInvariantViolation indicates a broken internal invariant.
	// It is only ever used as a panic payload.
	ErrInvariantViolation = errors.New("internal invariant violation")
)
