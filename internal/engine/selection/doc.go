// Package selection provides multi-range text selection values.
//
// The selection package handles:
//
//   - Single selection spans with the Range type
//   - Multi-range selections with a focused range via RangeList
//   - Normalization of overlapping ranges into a sorted disjoint set
//
// Selection Model:
//
// A Range uses an anchor/focus model where:
//   - Anchor: The offset where the selection started (the fixed end)
//   - Focus: The offset where the selection currently ends (the moving end)
//
// When Anchor == Focus the range is collapsed and represents a plain cursor.
// A range is backwards when the focus lies before the anchor, which happens
// when the user drags from right to left. Collapsed ranges count as forwards.
//
// Multi-Range Support:
//
// RangeList holds one or more ranges and the index of the focused range, the
// one that single-range edits and cursor movement act on. Every structural
// change re-establishes the invariants:
//   - There is always at least one range
//   - The focused index is always valid
//   - After normalization ranges are sorted and no two ranges share an offset
//
// Ranges are treated as closed intervals [FirstOffset, LastOffset], so two
// ranges that touch at an endpoint are merged into one.
//
// Basic usage:
//
//	// A backwards selection from 12 to 4
//	r := selection.NewRange(12, 4)
//
//	// Multi-range selection
//	list := selection.RangeList{}           // one cursor at offset 0
//	list = list.AddRange(selection.NewRange(10, 20))
//	list = list.AddRange(selection.NewRange(15, 30)) // merged into [10, 30]
//
// Thread Safety:
//
// Range and RangeList are immutable value types. Every operation returns a new
// value and leaves the receiver untouched, so values may be shared freely
// between goroutines and kept as history snapshots.
package selection
