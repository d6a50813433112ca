// Package script replays selection edits described in YAML documents.
//
// A document holds the initial text and ranges and a list of steps:
//
//	text: "hello brave new world"
//	ranges:
//	  - {anchor: 0, focus: 5}
//	focus: 0
//	steps:
//	  - {op: add, anchor: 6, focus: 11}
//	  - {op: move_focus, delta: 3}
//	  - {op: collapse, to: forwards}
//	  - {op: expect, ranges: [{anchor: 0, focus: 5}, {anchor: 14, focus: 14}], index: 1}
//
// Offsets are decoded loosely and validated by selection.RangeFrom, so a
// value such as .nan or "three" fails the step with ErrInvalidArgument.
//
// Supported ops:
//
//	add          append {anchor, focus} and focus it
//	remove_at    remove the range at index
//	remove       remove the range equal to {anchor, focus}
//	focus        focus the range at index
//	set          replace all ranges with ranges
//	move_focus   move the focused range's focus offset by delta
//	move_anchor  move the focused range's anchor offset by delta
//	flip         swap the focused range's anchor and focus
//	collapse     collapse the focused range to anchor, focus, backwards or forwards
//	collapse_all collapse every range onto its focus
//	normalize    merge touching ranges
//	reset        keep only the focused range
//	set_text     replace the text, clamping ranges to it
//	commit       record the text and ranges in the history
//	expect       fail unless the ranges (and focused index, when given) match
package script
