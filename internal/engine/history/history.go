package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/rangesel/internal/engine/selection"
	"github.com/google/uuid"
)

// DefaultMaxEntries is the entry limit used when none is given.
const DefaultMaxEntries = 1000

// ErrEntryNotFound indicates a history index or ID that does not exist.
var ErrEntryNotFound = errors.New("history entry not found")

// Entry is one recorded editor snapshot.
type Entry struct {
	ID     uuid.UUID
	Ranges selection.RangeList
	Text   string
	Time   time.Time
}

// History is a bounded list of snapshots, oldest first.
type History struct {
	entries    []Entry
	maxEntries int
}

// New creates an empty history holding at most maxEntries entries.
func New(maxEntries int) History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return History{maxEntries: maxEntries}
}

// MaxEntries returns the entry limit.
func (h History) MaxEntries() int {
	if h.maxEntries <= 0 {
		return DefaultMaxEntries
	}
	return h.maxEntries
}

// Push records a snapshot and returns the new history.
// The oldest entries are dropped once the limit is exceeded.
func (h History) Push(ranges selection.RangeList, text string) History {
	limit := h.MaxEntries()
	start := 0
	if len(h.entries)+1 > limit {
		start = len(h.entries) + 1 - limit
	}

	entries := make([]Entry, 0, len(h.entries)-start+1)
	entries = append(entries, h.entries[start:]...)
	entries = append(entries, Entry{
		ID:     uuid.New(),
		Ranges: ranges,
		Text:   text,
		Time:   time.Now(),
	})
	return History{entries: entries, maxEntries: limit}
}

// Len returns the number of entries.
func (h History) Len() int {
	return len(h.entries)
}

// At returns the entry at index i, oldest first.
func (h History) At(i int) (Entry, error) {
	if i < 0 || i >= len(h.entries) {
		return Entry{}, fmt.Errorf("history: entry %d of %d: %w", i, len(h.entries), ErrEntryNotFound)
	}
	return h.entries[i], nil
}

// Latest returns the most recent entry.
func (h History) Latest() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Find returns the entry with the given ID.
func (h History) Find(id uuid.UUID) (Entry, bool) {
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of all entries, oldest first.
func (h History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}
