// Package history provides the snapshot history container for editor state.
//
// A History is an ordered, bounded list of entries. Each Entry records the
// selection and the text at one point in time, together with a unique ID and
// a timestamp:
//
//	h := history.New(100)           // keep at most 100 entries
//	h = h.Push(ranges, text)        // record a snapshot
//	latest, ok := h.Latest()
//
// When the number of entries exceeds the limit, the oldest entries are
// dropped. History does not interpret the entries: deciding which snapshot to
// restore, and when, is left to the caller.
//
// History is an immutable value type. Push returns a new History and leaves
// the receiver untouched, so older values remain valid snapshots themselves.
package history
