package engine

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dshills/rangesel/internal/engine/history"
	"github.com/dshills/rangesel/internal/engine/selection"
)

// Re-export commonly used types for convenience.
type (
	// Range is a single selection span.
	Range = selection.Range

	// RangeList is a multi-range selection with a focused range.
	RangeList = selection.RangeList

	// History is the snapshot history.
	History = history.History

	// Entry is one history snapshot.
	Entry = history.Entry
)

// State is the root editor state: text, selection and history.
// State is an immutable value type.
type State struct {
	text       string
	ranges     selection.RangeList
	history    history.History
	maxHistory int
}

// New creates a State.
// Without options the text is empty and the selection is a cursor at 0.
func New(opts ...Option) State {
	s := State{maxHistory: DefaultMaxHistory}
	for _, opt := range opts {
		opt(&s)
	}
	s.history = history.New(s.maxHistory)
	s.ranges = clampRanges(s.ranges, s.text)
	return s
}

// NewFromReader creates a State whose text is read from r.
func NewFromReader(r io.Reader, opts ...Option) (State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return State{}, fmt.Errorf("reading text: %w", err)
	}
	return New(append(opts, WithText(string(data)))...), nil
}

// Text returns the document text.
func (s State) Text() string {
	return s.text
}

// TextLength returns the text length in characters.
func (s State) TextLength() int {
	return utf8.RuneCountInString(s.text)
}

// Ranges returns the current selection.
func (s State) Ranges() selection.RangeList {
	return s.ranges
}

// History returns the committed snapshots.
func (s State) History() history.History {
	return s.history
}

// SetText replaces the text and clamps the selection to its length.
func (s State) SetText(text string) State {
	s.text = text
	s.ranges = clampRanges(s.ranges, text)
	return s
}

// SetRanges replaces the selection, clamped to the text length.
func (s State) SetRanges(ranges selection.RangeList) State {
	s.ranges = clampRanges(ranges, s.text)
	return s
}

// UpdateRanges replaces the selection with the result of f.
// If f fails the state is returned unchanged along with the error.
func (s State) UpdateRanges(f func(selection.RangeList) (selection.RangeList, error)) (State, error) {
	ranges, err := f(s.ranges)
	if err != nil {
		return s, err
	}
	return s.SetRanges(ranges), nil
}

// Commit records the current text and selection in the history.
func (s State) Commit() State {
	s.history = s.history.Push(s.ranges, s.text)
	return s
}

// SelectedText returns the text covered by each range, in list order.
// Collapsed ranges yield empty strings.
func (s State) SelectedText() []string {
	runes := []rune(s.text)
	ranges := s.ranges.Ranges()
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = string(runes[r.FirstOffset():r.LastOffset()])
	}
	return out
}

// FocusedText returns the text covered by the focused range.
func (s State) FocusedText() string {
	r := s.ranges.FocusedRange()
	return string([]rune(s.text)[r.FirstOffset():r.LastOffset()])
}

// clampRanges bounds every range by the text length.
// Lists already within bounds are returned as is, without normalizing.
func clampRanges(ranges selection.RangeList, text string) selection.RangeList {
	n := utf8.RuneCountInString(text)
	for _, r := range ranges.Ranges() {
		if r.FirstOffset() < 0 || r.LastOffset() > n {
			return ranges.Clamp(n)
		}
	}
	return ranges
}
