package domain

import (
	"sort"

	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// Interval is a half-open interval [Start, End) of minutes within a day.
// Half-open semantics mean that an interval ending exactly where another
// starts does not overlap it: back-to-back reservations are legal.
type Interval struct {
	Start types.MinuteOfDay
	End   types.MinuteOfDay
}

// Overlaps reports whether two half-open intervals actually intersect
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains reports whether minute m lies within the interval
func (i Interval) Contains(m types.MinuteOfDay) bool {
	return m >= i.Start && m < i.End
}

// IsEmpty reports whether the interval covers no time at all
func (i Interval) IsEmpty() bool {
	return i.End <= i.Start
}

// MergeIntervals collapses a list of intervals into a minimal sorted disjoint
// set. Overlapping and adjacent intervals are merged; empty ones are dropped.
// The input slice is not modified.
func MergeIntervals(intervals []Interval) []Interval {
	filtered := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			filtered = append(filtered, iv)
		}
	}
	if len(filtered) == 0 {
		return []Interval{}
	}

	sort.Slice(filtered, func(a, b int) bool {
		if filtered[a].Start != filtered[b].Start {
			return filtered[a].Start < filtered[b].Start
		}
		return filtered[a].End < filtered[b].End
	})

	merged := []Interval{filtered[0]}
	for _, iv := range filtered[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged
}
