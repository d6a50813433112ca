// Package engine provides the root editor state for rangesel.
//
// The engine package serves as the facade that ties the selection and the
// document text together with a snapshot history:
//
//   - selection: Ranges, multi-range lists and normalization
//   - history: Bounded snapshot container
//
// # State
//
// State is an immutable aggregate of the current text, the current
// RangeList and the History of committed snapshots. Every method returns a
// new State:
//
//	s := engine.New(engine.WithText("Hello, World!"))
//
//	// Select "World" and add a cursor at the start
//	s, err := s.UpdateRanges(func(l engine.RangeList) (engine.RangeList, error) {
//		return l.SetRanges([]engine.Range{selection.NewRange(7, 12)})
//	})
//	s = s.SetRanges(s.Ranges().AddRange(selection.NewCollapsedRange(0)))
//
//	// Record the state
//	s = s.Commit()
//
// # Offsets
//
// Offsets count characters (runes), not bytes. Range itself does not bound
// offsets; State clamps every range to the text length whenever the text is
// replaced.
//
// # Thread Safety
//
// State values are never mutated after creation and may be shared between
// goroutines without synchronization.
package engine
