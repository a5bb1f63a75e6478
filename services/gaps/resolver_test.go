package gaps

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func iv(start, end string) OccupiedInterval {
	s, ok := ParseDate(start)
	if !ok {
		panic("bad test date " + start)
	}
	e, ok := ParseDate(end)
	if !ok {
		panic("bad test date " + end)
	}
	return OccupiedInterval{RoomID: "A", Start: s, End: e}
}

func rangesOf(free []FreeInterval) []Range {
	out := make([]Range, 0, len(free))
	for _, f := range free {
		out = append(out, Range{Start: f.Start.String(), End: f.End.String()})
	}
	return out
}

func equalRanges(a, b []Range) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolveGaps(t *testing.T) {
	cases := []struct {
		name      string
		intervals []OccupiedInterval
		want      []Range
	}{
		{"empty", nil, []Range{}},
		{"single", []OccupiedInterval{iv("2024-07-01", "2024-07-05")}, []Range{}},
		{
			"one gap",
			[]OccupiedInterval{iv("2024-06-01", "2024-06-03"), iv("2024-06-10", "2024-06-12")},
			[]Range{{"2024-06-03", "2024-06-10"}},
		},
		{
			"overlap",
			[]OccupiedInterval{iv("2024-06-01", "2024-06-05"), iv("2024-06-04", "2024-06-08")},
			[]Range{},
		},
		{
			"checkout day is next checkin",
			[]OccupiedInterval{iv("2024-06-01", "2024-06-05"), iv("2024-06-05", "2024-06-08")},
			[]Range{},
		},
		{
			"adjacent days",
			[]OccupiedInterval{iv("2024-06-01", "2024-06-05"), iv("2024-06-06", "2024-06-08")},
			[]Range{},
		},
		{
			"one free day",
			[]OccupiedInterval{iv("2024-06-01", "2024-06-05"), iv("2024-06-07", "2024-06-08")},
			[]Range{{"2024-06-05", "2024-06-07"}},
		},
		{
			"leap year rollover",
			[]OccupiedInterval{iv("2024-02-28", "2024-02-29"), iv("2024-03-01", "2024-03-02")},
			[]Range{},
		},
		{
			"non leap february",
			[]OccupiedInterval{iv("2023-02-27", "2023-02-28"), iv("2023-03-01", "2023-03-02")},
			[]Range{},
		},
		{
			"year rollover gap",
			[]OccupiedInterval{iv("2024-12-20", "2024-12-30"), iv("2025-01-02", "2025-01-05")},
			[]Range{{"2024-12-30", "2025-01-02"}},
		},
		{
			"contained interval does not shrink span",
			[]OccupiedInterval{iv("2024-06-01", "2024-06-20"), iv("2024-06-03", "2024-06-04"), iv("2024-06-25", "2024-06-26")},
			[]Range{{"2024-06-20", "2024-06-25"}},
		},
		{
			"same start different ends",
			[]OccupiedInterval{iv("2024-06-01", "2024-06-02"), iv("2024-06-01", "2024-06-10"), iv("2024-06-15", "2024-06-16")},
			[]Range{{"2024-06-10", "2024-06-15"}},
		},
		{
			"unsorted input",
			[]OccupiedInterval{iv("2024-08-20", "2024-08-22"), iv("2024-08-01", "2024-08-03"), iv("2024-08-10", "2024-08-12")},
			[]Range{{"2024-08-03", "2024-08-10"}, {"2024-08-12", "2024-08-20"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			free, err := ResolveGaps("A", tc.intervals)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if free == nil {
				t.Fatal("expected non-nil result")
			}
			if got := rangesOf(free); !equalRanges(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolveGaps_FreeIntervalsAreNonEmpty(t *testing.T) {
	free, err := ResolveGaps("A", []OccupiedInterval{
		iv("2024-06-01", "2024-06-03"),
		iv("2024-06-05", "2024-06-06"),
		iv("2024-06-06", "2024-06-09"),
		iv("2024-06-11", "2024-06-11"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(free) != 2 {
		t.Fatalf("expected 2 free intervals, got %v", rangesOf(free))
	}
	for i, f := range free {
		if !f.Start.Before(f.End) {
			t.Fatalf("free interval %d is empty: %v", i, rangesOf(free))
		}
		if i > 0 && !free[i-1].Start.Before(f.Start) {
			t.Fatalf("free intervals out of order: %v", rangesOf(free))
		}
	}
}

func TestResolveGaps_OrderingInvariance(t *testing.T) {
	base := []OccupiedInterval{
		iv("2024-06-01", "2024-06-03"),
		iv("2024-06-02", "2024-06-04"),
		iv("2024-06-10", "2024-06-12"),
		iv("2024-06-13", "2024-06-15"),
		iv("2024-06-20", "2024-06-20"),
		iv("2024-06-21", "2024-06-30"),
		iv("2024-07-05", "2024-07-06"),
	}
	want, err := ResolveGaps("A", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := make([]OccupiedInterval, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := ResolveGaps("A", shuffled)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !equalRanges(rangesOf(got), rangesOf(want)) {
			t.Fatalf("permutation %d changed result: got %v, want %v", i, rangesOf(got), rangesOf(want))
		}
	}
}

func TestResolveGaps_Idempotent(t *testing.T) {
	intervals := []OccupiedInterval{
		iv("2024-06-01", "2024-06-03"),
		iv("2024-06-04", "2024-06-05"),
		iv("2024-06-10", "2024-06-12"),
		iv("2024-06-11", "2024-06-18"),
		iv("2024-06-25", "2024-06-27"),
	}
	first, err := ResolveGaps("A", intervals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ResolveGaps("A", MergeSpans(intervals))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalRanges(rangesOf(first), rangesOf(second)) {
		t.Fatalf("re-running on merged spans changed result: %v vs %v", rangesOf(first), rangesOf(second))
	}
	if got := MergeSpans(MergeSpans(intervals)); len(got) != len(MergeSpans(intervals)) {
		t.Fatalf("merging merged spans subdivided them: %d spans", len(got))
	}
}

func TestResolveGaps_PartitionsSpan(t *testing.T) {
	intervals := []OccupiedInterval{
		iv("2024-06-01", "2024-06-03"),
		iv("2024-06-08", "2024-06-09"),
		iv("2024-06-09", "2024-06-12"),
		iv("2024-06-20", "2024-06-22"),
	}
	spans := MergeSpans(intervals)
	free, err := ResolveGaps("A", intervals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(free) != len(spans)-1 {
		t.Fatalf("expected %d free intervals, got %d", len(spans)-1, len(free))
	}
	for i, f := range free {
		if !f.Start.Equal(spans[i].End) || !f.End.Equal(spans[i+1].Start) {
			t.Fatalf("free interval %d %v does not meet spans %v and %v", i, rangesOf(free[i:i+1]), spans[i], spans[i+1])
		}
	}
}

func TestResolveGaps_PreconditionViolation(t *testing.T) {
	bad := OccupiedInterval{RoomID: "A", Start: NewDate(2024, time.June, 5), End: NewDate(2024, time.June, 1)}
	_, err := ResolveGaps("A", []OccupiedInterval{iv("2024-06-01", "2024-06-02"), bad})
	if !errors.Is(err, ErrPreconditionViolation) {
		t.Fatalf("expected precondition violation, got %v", err)
	}
	if !IsPrecondition(err) {
		t.Fatal("IsPrecondition should report true")
	}
}

func TestResolveGaps_DoesNotMutateInput(t *testing.T) {
	intervals := []OccupiedInterval{iv("2024-06-10", "2024-06-12"), iv("2024-06-01", "2024-06-03")}
	if _, err := ResolveGaps("A", intervals); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intervals[0].Start.String() != "2024-06-10" {
		t.Fatalf("input was reordered: %v", intervals)
	}
}
