package engine

import (
	"github.com/dshills/rangesel/internal/engine/history"
	"github.com/dshills/rangesel/internal/engine/selection"
)

// Errors returned by engine operations.
var (
	// ErrInvalidArgument indicates a malformed offset or an empty range collection.
	ErrInvalidArgument = selection.ErrInvalidArgument

	// ErrIndexOutOfRange indicates a range index outside the current list.
	ErrIndexOutOfRange = selection.ErrIndexOutOfRange

	// ErrNotFound indicates a range that is not one of the current ranges.
	ErrNotFound = selection.ErrNotFound

	// ErrEntryNotFound indicates a history entry that does not exist.
	ErrEntryNotFound = history.ErrEntryNotFound
)
