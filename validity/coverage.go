package validity

import (
	"sort"

	"github.com/bitmark-inc/immunity-api/schema"
)

// ProtectedOn returns the ranges that cover the given day.
func ProtectedOn(ranges []schema.ValidityRange, d Date) []schema.ValidityRange {
	covering := make([]schema.ValidityRange, 0)
	for _, r := range ranges {
		if rangeOf(r).Contains(d) {
			covering = append(covering, r)
		}
	}
	return covering
}

// Coverage merges overlapping and adjacent ranges into disjoint windows,
// ordered by start.
func Coverage(ranges []schema.ValidityRange) []DateRange {
	windows := make([]DateRange, 0, len(ranges))
	for _, r := range ranges {
		if dr := rangeOf(r); !dr.Empty() {
			windows = append(windows, dr)
		}
	}
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})

	merged := make([]DateRange, 0, len(windows))
	for _, w := range windows {
		last := len(merged) - 1
		if last >= 0 && (merged[last].Overlaps(w) || merged[last].Adjacent(w)) {
			if w.End.After(merged[last].End) {
				merged[last].End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

func rangeOf(r schema.ValidityRange) DateRange {
	return NewDateRange(DateOf(r.Start), DateOf(r.End))
}
