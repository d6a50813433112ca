// Package watcher reports changes to a set of files.
//
// Files are watched through their parent directories so that editors which
// save by writing a temporary file and renaming it over the original are
// still observed. Rapid changes to the same file are coalesced by a
// Debouncer before they reach the caller.
package watcher

import (
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrNoPaths       = errors.New("no paths to watch")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event represents a change to a watched file.
type Event struct {
	// Path is the absolute path of the affected file.
	Path string
	// Op is the operation that occurred. Coalesced events carry every op seen.
	Op Op
	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Source produces file events.
type Source interface {
	// Events returns the channel of file change events.
	// The channel is closed when the source is closed.
	Events() <-chan Event

	// Errors returns the channel of watcher errors.
	// The channel is closed when the source is closed.
	Errors() <-chan error

	// Close stops the source and releases resources.
	Close() error
}

// Handler is a function that handles file events.
type Handler func(event Event)
