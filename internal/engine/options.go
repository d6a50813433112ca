package engine

import (
	"github.com/dshills/rangesel/internal/engine/history"
	"github.com/dshills/rangesel/internal/engine/selection"
)

// Default configuration values.
const (
	DefaultMaxHistory = history.DefaultMaxEntries
)

// Option configures a State during creation.
type Option func(*State)

// WithText sets the initial text.
func WithText(text string) Option {
	return func(s *State) {
		s.text = text
	}
}

// WithRangeList sets the initial selection.
// The ranges are clamped to the text length when the state is created.
func WithRangeList(ranges selection.RangeList) Option {
	return func(s *State) {
		s.ranges = ranges
	}
}

// WithMaxHistory sets the maximum number of history entries.
func WithMaxHistory(maxEntries int) Option {
	return func(s *State) {
		if maxEntries > 0 {
			s.maxHistory = maxEntries
		}
	}
}
