package selection

import (
	"fmt"
	"sort"
)

// group is a run of touching ranges collected by the merge sweep.
type group struct {
	span    Range // forward range covering every member
	members int
	only    Range // the member, when members == 1
}

// normalize merges touching ranges and returns the result as a new list.
// ranges is owned by normalize and may be reordered.
//
// Ranges are closed intervals: sorted by first offset, each range joins the
// open group when it touches the group's span.
func normalize(ranges []Range, focus int) RangeList {
	n := len(ranges)
	if n == 1 {
		return RangeList{ranges: ranges, focusedIndex: 0}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ranges[order[i]].FirstOffset() < ranges[order[j]].FirstOffset()
	})

	groups := make([]group, 0, n)
	groupOf := make([]int, n)
	for _, idx := range order {
		r := ranges[idx]
		if len(groups) > 0 {
			g := &groups[len(groups)-1]
			if g.span.Touches(r) {
				g.span = g.span.Union(r)
				g.members++
				groupOf[idx] = len(groups) - 1
				continue
			}
		}
		groups = append(groups, group{
			span:    r.SetForwards(),
			members: 1,
			only:    r,
		})
		groupOf[idx] = len(groups) - 1
	}

	merged := make([]Range, len(groups))
	for i, g := range groups {
		if g.members == 1 {
			merged[i] = g.only
			continue
		}
		merged[i] = g.span
	}

	newFocus := groupOf[focus]
	if !merged[newFocus].Contains(ranges[focus]) {
		panic(fmt.Errorf("range list: normalize: no merged range contains the focused range %s: %w",
			ranges[focus], ErrInvariantViolation))
	}
	return RangeList{ranges: merged, focusedIndex: newFocus}
}
