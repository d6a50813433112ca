package selection

import (
	"fmt"
	"math"
)

// Range represents one selection span as an anchor/focus offset pair.
// Anchor is where the selection started; Focus is where it currently ends.
// The zero value is a collapsed range at offset 0.
// Range is an immutable value type.
type Range struct {
	anchor int
	focus  int
}

// NewRange creates a range from anchor to focus.
func NewRange(anchor, focus int) Range {
	return Range{anchor: anchor, focus: focus}
}

// NewCollapsedRange creates a range representing just a cursor (no extent).
func NewCollapsedRange(offset int) Range {
	return Range{anchor: offset, focus: offset}
}

// RangeArgs holds loosely typed offsets, as produced by decoders.
// A nil field means the offset was not supplied and defaults to 0.
type RangeArgs struct {
	AnchorOffset any
	FocusOffset  any
}

// RangeFrom builds a Range from loosely typed offsets.
// Supplied offsets must be numbers holding a whole, non-NaN value.
func RangeFrom(args RangeArgs) (Range, error) {
	anchor, err := offsetArg("anchorOffset", args.AnchorOffset)
	if err != nil {
		return Range{}, err
	}
	focus, err := offsetArg("focusOffset", args.FocusOffset)
	if err != nil {
		return Range{}, err
	}
	return Range{anchor: anchor, focus: focus}, nil
}

func offsetArg(name string, v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, outOfRange(name, n)
		}
		return int(n), nil
	case uint:
		if n > math.MaxInt {
			return 0, outOfRange(name, n)
		}
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, outOfRange(name, n)
		}
		return int(n), nil
	case float32:
		return floatOffset(name, float64(n))
	case float64:
		return floatOffset(name, n)
	default:
		return 0, fmt.Errorf("range: the %s must be a number, got %T: %w", name, v, ErrInvalidArgument)
	}
}

func floatOffset(name string, f float64) (int, error) {
	if math.IsNaN(f) {
		return 0, fmt.Errorf("range: the %s cannot be NaN: %w", name, ErrInvalidArgument)
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("range: the %s must be a whole number, got %v: %w", name, f, ErrInvalidArgument)
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, outOfRange(name, f)
	}
	return int(f), nil
}

func outOfRange(name string, v any) error {
	return fmt.Errorf("range: the %s is out of range, got %v: %w", name, v, ErrInvalidArgument)
}

// IsRange reports whether v is a Range or a non-nil *Range.
func IsRange(v any) bool {
	switch r := v.(type) {
	case Range:
		return true
	case *Range:
		return r != nil
	default:
		return false
	}
}

// AnchorOffset returns the offset where the selection started.
func (r Range) AnchorOffset() int {
	return r.anchor
}

// FocusOffset returns the offset where the selection currently ends.
func (r Range) FocusOffset() int {
	return r.focus
}

// IsCollapsed returns true if the range has no extent (just a cursor).
func (r Range) IsCollapsed() bool {
	return r.anchor == r.focus
}

// IsExpanded returns true if the range covers at least one character.
func (r Range) IsExpanded() bool {
	return !r.IsCollapsed()
}

// IsBackwards returns true if the focus lies before the anchor.
func (r Range) IsBackwards() bool {
	return r.anchor > r.focus
}

// IsForwards returns true if the range is not backwards.
// Collapsed ranges are forwards.
func (r Range) IsForwards() bool {
	return !r.IsBackwards()
}

// FirstOffset returns the lower bound of the range.
func (r Range) FirstOffset() int {
	return min(r.anchor, r.focus)
}

// LastOffset returns the upper bound of the range.
func (r Range) LastOffset() int {
	return max(r.anchor, r.focus)
}

// Len returns the number of characters covered by the range.
func (r Range) Len() int {
	return r.LastOffset() - r.FirstOffset()
}

// Contains returns true if other lies within r.
// Both ranges are treated as closed intervals, so equal ranges contain each other.
func (r Range) Contains(other Range) bool {
	return other.FirstOffset() >= r.FirstOffset() && other.LastOffset() <= r.LastOffset()
}

// Touches returns true if the closed intervals of r and other share an offset.
func (r Range) Touches(other Range) bool {
	return r.FirstOffset() <= other.LastOffset() && other.FirstOffset() <= r.LastOffset()
}

// Union returns a forward range covering both r and other.
// Direction information from the inputs is not preserved.
func (r Range) Union(other Range) Range {
	return Range{
		anchor: min(r.FirstOffset(), other.FirstOffset()),
		focus:  max(r.LastOffset(), other.LastOffset()),
	}
}

// Flip returns a range with anchor and focus swapped.
func (r Range) Flip() Range {
	return Range{anchor: r.focus, focus: r.anchor}
}

// SetBackwards returns the range pointing backwards.
// Collapsed ranges have no direction to change and are returned as is.
func (r Range) SetBackwards() Range {
	if r.IsBackwards() || r.IsCollapsed() {
		return r
	}
	return r.Flip()
}

// SetForwards returns the range pointing forwards.
func (r Range) SetForwards() Range {
	if r.IsForwards() {
		return r
	}
	return r.Flip()
}

// SetAnchorOffset returns a range with the anchor moved to offset.
func (r Range) SetAnchorOffset(offset int) Range {
	return Range{anchor: offset, focus: r.focus}
}

// SetFocusOffset returns a range with the focus moved to offset.
func (r Range) SetFocusOffset(offset int) Range {
	return Range{anchor: r.anchor, focus: offset}
}

// MoveAnchorOffset returns a range with the anchor shifted by delta.
func (r Range) MoveAnchorOffset(delta int) Range {
	return r.SetAnchorOffset(r.anchor + delta)
}

// MoveFocusOffset returns a range with the focus shifted by delta.
func (r Range) MoveFocusOffset(delta int) Range {
	return r.SetFocusOffset(r.focus + delta)
}

// CollapseAnchor collapses the range onto its anchor.
func (r Range) CollapseAnchor() Range {
	return r.SetFocusOffset(r.anchor)
}

// CollapseFocus collapses the range onto its focus.
func (r Range) CollapseFocus() Range {
	return r.SetAnchorOffset(r.focus)
}

// CollapseBackwards collapses the range to its first offset.
func (r Range) CollapseBackwards() Range {
	return r.SetBackwards().CollapseFocus()
}

// CollapseForwards collapses the range to its last offset.
func (r Range) CollapseForwards() Range {
	return r.SetForwards().CollapseFocus()
}

// Clamp returns a range with both offsets clamped to [0, maxOffset].
func (r Range) Clamp(maxOffset int) Range {
	if maxOffset < 0 {
		maxOffset = 0
	}
	return Range{
		anchor: min(max(r.anchor, 0), maxOffset),
		focus:  min(max(r.focus, 0), maxOffset),
	}
}

// Equal returns true if two ranges have the same anchor and focus.
func (r Range) Equal(other Range) bool {
	return r.anchor == other.anchor && r.focus == other.focus
}

// String returns a string representation of the range.
func (r Range) String() string {
	if r.IsCollapsed() {
		return fmt.Sprintf("Cursor(%d)", r.focus)
	}
	dir := "→"
	if r.IsBackwards() {
		dir = "←"
	}
	return fmt.Sprintf("Range(%d%s%d)", r.anchor, dir, r.focus)
}
