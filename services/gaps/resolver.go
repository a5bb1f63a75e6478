package gaps

import (
	"fmt"
	"sort"
)

// FreeInterval is the gap between two occupied spans. Start is the last day
// of the earlier span and End the first day of the next one, so at least one
// whole day between them is unoccupied.
type FreeInterval struct {
	Start Date
	End   Date
}

// ResolveGaps merges a room's occupied intervals and returns the free
// intervals between the merged spans, ordered by start. Nothing is reported
// before the first stay or after the last one.
func ResolveGaps(roomID string, intervals []OccupiedInterval) ([]FreeInterval, error) {
	for _, iv := range intervals {
		if iv.Start.After(iv.End) {
			return nil, fmt.Errorf("room %s: interval [%s, %s] starts after it ends: %w",
				roomID, iv.Start, iv.End, ErrPreconditionViolation)
		}
	}

	spans := MergeSpans(intervals)
	free := make([]FreeInterval, 0, len(spans))
	for i := 1; i < len(spans); i++ {
		free = append(free, FreeInterval{Start: spans[i-1].End, End: spans[i].Start})
	}
	return free, nil
}

// MergeSpans collapses overlapping and back-to-back intervals into maximal
// occupied spans, ordered by start. Two stays are back-to-back when the
// second starts the day after the first ends.
func MergeSpans(intervals []OccupiedInterval) []OccupiedInterval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]OccupiedInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if c := sorted[i].Start.Compare(sorted[j].Start); c != 0 {
			return c < 0
		}
		return sorted[i].End.Before(sorted[j].End)
	})

	spans := []OccupiedInterval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &spans[len(spans)-1]
		if !iv.Start.After(last.End.Next()) {
			last.End = maxDate(last.End, iv.End)
			continue
		}
		spans = append(spans, iv)
	}
	return spans
}
