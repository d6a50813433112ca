package selection

import (
	"fmt"
	"strings"
)

// RangeList is an ordered collection of one or more ranges plus the index of
// the focused range.
// The zero value is the default list: one collapsed range at offset 0, focused.
// RangeList is an immutable value type; every mutator returns a new list.
type RangeList struct {
	ranges       []Range
	focusedIndex int
}

// defaultRanges backs the zero value. It is never written to.
var defaultRanges = []Range{{}}

// Option configures a RangeList during creation.
type Option func(*listArgs)

type listArgs struct {
	ranges       []Range
	hasRanges    bool
	focusedIndex int
	hasFocus     bool
}

// WithRanges sets the initial ranges. At least one range is required.
func WithRanges(ranges ...Range) Option {
	return func(a *listArgs) {
		a.ranges = ranges
		a.hasRanges = true
	}
}

// WithFocusedRangeIndex sets the initial focused range index.
func WithFocusedRangeIndex(index int) Option {
	return func(a *listArgs) {
		a.focusedIndex = index
		a.hasFocus = true
	}
}

// NewRangeList creates a range list.
// Without options the list holds a single collapsed range at offset 0.
// The ranges are stored as given; call Normalize to merge overlapping ones.
func NewRangeList(opts ...Option) (RangeList, error) {
	var args listArgs
	for _, opt := range opts {
		opt(&args)
	}

	if args.hasRanges && len(args.ranges) == 0 {
		return RangeList{}, fmt.Errorf("range list: the ranges must contain at least one range: %w", ErrInvalidArgument)
	}

	count := 1
	if args.hasRanges {
		count = len(args.ranges)
	}
	if args.hasFocus && (args.focusedIndex < 0 || args.focusedIndex >= count) {
		if args.hasRanges {
			return RangeList{}, fmt.Errorf("range list: the focused range index (%d) is either greater than the number of ranges (%d) or less than zero: %w",
				args.focusedIndex, count, ErrIndexOutOfRange)
		}
		return RangeList{}, fmt.Errorf("range list: the focused range index (%d) is either greater than the number of ranges or less than zero: %w",
			args.focusedIndex, ErrIndexOutOfRange)
	}

	list := RangeList{focusedIndex: args.focusedIndex}
	if args.hasRanges {
		list.ranges = cloneRanges(args.ranges)
	}
	return list, nil
}

// MustRangeList is like NewRangeList but panics on error.
func MustRangeList(opts ...Option) RangeList {
	list, err := NewRangeList(opts...)
	if err != nil {
		panic(err)
	}
	return list
}

// IsRangeList reports whether v is a RangeList or a non-nil *RangeList.
func IsRangeList(v any) bool {
	switch l := v.(type) {
	case RangeList:
		return true
	case *RangeList:
		return l != nil
	default:
		return false
	}
}

// items returns the backing ranges, substituting the default for the zero value.
func (l RangeList) items() []Range {
	if len(l.ranges) == 0 {
		return defaultRanges
	}
	return l.ranges
}

// Ranges returns a copy of all ranges.
// The returned slice is safe to modify without affecting the RangeList.
func (l RangeList) Ranges() []Range {
	return cloneRanges(l.items())
}

// RangeCount returns the number of ranges.
func (l RangeList) RangeCount() int {
	return len(l.items())
}

// FocusedRangeIndex returns the index of the focused range.
func (l RangeList) FocusedRangeIndex() int {
	return l.focusedIndex
}

// FocusedRange returns the range further edits act on.
func (l RangeList) FocusedRange() Range {
	return l.items()[l.focusedIndex]
}

// IsMulti returns true if there are multiple ranges.
func (l RangeList) IsMulti() bool {
	return l.RangeCount() > 1
}

// HasSelection returns true if any range is expanded.
func (l RangeList) HasSelection() bool {
	for _, r := range l.items() {
		if r.IsExpanded() {
			return true
		}
	}
	return false
}

// GetRange returns the range at the given index.
func (l RangeList) GetRange(index int) (Range, error) {
	items := l.items()
	if index < 0 || index >= len(items) {
		return Range{}, fmt.Errorf("range list: get range %d: the index is either less than zero or greater than the number of ranges (%d): %w",
			index, len(items), ErrIndexOutOfRange)
	}
	return items[index], nil
}

// SetFocusedRangeIndex returns a copy focused on the range at index.
func (l RangeList) SetFocusedRangeIndex(index int) (RangeList, error) {
	items := l.items()
	if index < 0 || index >= len(items) {
		return l, fmt.Errorf("range list: set focused range index %d: the index is either less than zero or greater than the number of ranges (%d): %w",
			index, len(items), ErrIndexOutOfRange)
	}
	return RangeList{ranges: l.ranges, focusedIndex: index}, nil
}

// SetRanges replaces all ranges and normalizes the result.
// The focused index is kept, clamped to the new number of ranges.
func (l RangeList) SetRanges(ranges []Range) (RangeList, error) {
	if len(ranges) == 0 {
		return l, fmt.Errorf("range list: set ranges: the ranges must contain at least one range: %w", ErrInvalidArgument)
	}
	focus := min(l.focusedIndex, len(ranges)-1)
	return normalize(cloneRanges(ranges), focus), nil
}

// AddRange appends r, focuses it and normalizes the result.
func (l RangeList) AddRange(r Range) RangeList {
	items := l.items()
	ranges := make([]Range, len(items), len(items)+1)
	copy(ranges, items)
	ranges = append(ranges, r)
	return normalize(ranges, len(ranges)-1)
}

// RemoveRangeAtIndex removes the range at index and normalizes the result.
// Removing the focused range moves the focus to the first range.
// The last remaining range cannot be removed.
func (l RangeList) RemoveRangeAtIndex(index int) (RangeList, error) {
	items := l.items()
	if index < 0 || index >= len(items) {
		return l, fmt.Errorf("range list: remove range at index %d: the index is either less than zero or greater than the number of ranges (%d): %w",
			index, len(items), ErrIndexOutOfRange)
	}
	if len(items) == 1 {
		return l, fmt.Errorf("range list: remove range at index %d: cannot remove the only range: %w", index, ErrInvalidArgument)
	}

	ranges := make([]Range, 0, len(items)-1)
	ranges = append(ranges, items[:index]...)
	ranges = append(ranges, items[index+1:]...)

	focus := l.focusedIndex
	switch {
	case index == l.focusedIndex:
		focus = 0
	case index < l.focusedIndex:
		focus--
	}
	return normalize(ranges, focus), nil
}

// RemoveRange removes the first range equal to r.
func (l RangeList) RemoveRange(r Range) (RangeList, error) {
	index := l.IndexOf(r)
	if index < 0 {
		return l, fmt.Errorf("range list: remove range %s: the range is not one of the current ranges: %w", r, ErrNotFound)
	}
	return l.RemoveRangeAtIndex(index)
}

// IndexOf returns the index of the first range equal to r, or -1.
func (l RangeList) IndexOf(r Range) int {
	for i, other := range l.items() {
		if other.Equal(r) {
			return i
		}
	}
	return -1
}

// Normalize sorts the ranges and merges every group of touching ranges.
// The focus follows the previously focused range into its merged range.
func (l RangeList) Normalize() RangeList {
	return normalize(cloneRanges(l.items()), l.focusedIndex)
}

// UpdateFocusedRange replaces the focused range with f(focused) and normalizes.
func (l RangeList) UpdateFocusedRange(f func(Range) Range) RangeList {
	ranges := cloneRanges(l.items())
	ranges[l.focusedIndex] = f(ranges[l.focusedIndex])
	return normalize(ranges, l.focusedIndex)
}

// Map applies f to each range and normalizes the result.
func (l RangeList) Map(f func(Range) Range) RangeList {
	items := l.items()
	ranges := make([]Range, len(items))
	for i, r := range items {
		ranges[i] = f(r)
	}
	return normalize(ranges, l.focusedIndex)
}

// CollapseAll collapses every range onto its focus.
func (l RangeList) CollapseAll() RangeList {
	return l.Map(Range.CollapseFocus)
}

// Clamp clamps every range to [0, maxOffset].
func (l RangeList) Clamp(maxOffset int) RangeList {
	return l.Map(func(r Range) Range { return r.Clamp(maxOffset) })
}

// Reset keeps only the focused range.
func (l RangeList) Reset() RangeList {
	return RangeList{ranges: []Range{l.FocusedRange()}}
}

// Equal returns true if both lists hold the same ranges in the same order
// and focus the same index.
func (l RangeList) Equal(other RangeList) bool {
	a, b := l.items(), other.items()
	if len(a) != len(b) || l.focusedIndex != other.focusedIndex {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String returns a string representation of the list.
// The focused range is marked with an asterisk.
func (l RangeList) String() string {
	var sb strings.Builder
	sb.WriteString("RangeList[")
	for i, r := range l.items() {
		if i > 0 {
			sb.WriteString(" ")
		}
		if i == l.focusedIndex {
			sb.WriteString("*")
		}
		sb.WriteString(r.String())
	}
	sb.WriteString("]")
	return sb.String()
}

func cloneRanges(ranges []Range) []Range {
	out := make([]Range, len(ranges))
	copy(out, ranges)
	return out
}
