package gaps

import (
	"errors"
	"testing"
)

func TestBuild_MixedRooms(t *testing.T) {
	entries := []Entry{
		{RoomID: "A", StartDate: "2024-06-10", EndDate: "2024-06-12"},
		{RoomID: "B", StartDate: "2024-07-09", EndDate: "2024-07-02"},
		{RoomID: "A", StartDate: "2024-06-01", EndDate: "2024-06-03"},
		{RoomID: "B", StartDate: "2024-07-01", EndDate: "2024-07-05"},
	}
	report, failures, err := Build(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].RoomID != "B" || !errors.Is(failures[0], ErrInvalidRange) {
		t.Fatalf("unexpected failure: %v", failures[0])
	}
	if failures[0].Kind() != "invalidRange" {
		t.Fatalf("expected kind invalidRange, got %s", failures[0].Kind())
	}

	rendered := report.Render()
	if got := rendered["A"]; !equalRanges(got, []Range{{"2024-06-03", "2024-06-10"}}) {
		t.Fatalf("room A: got %v", got)
	}
	if got, ok := rendered["B"]; !ok || len(got) != 0 {
		t.Fatalf("room B: expected present and empty, got %v (present=%v)", got, ok)
	}
	if rooms := report.Rooms(); len(rooms) != 2 || rooms[0] != "A" || rooms[1] != "B" {
		t.Fatalf("unexpected room order: %v", rooms)
	}
}

func TestBuild_AllInvalidRoomStillReported(t *testing.T) {
	report, failures, err := Build([]Entry{
		{RoomID: "C", StartDate: "bad", EndDate: "2024-01-01"},
		{RoomID: "C", StartDate: "2024-01-01", EndDate: ""},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}
	for _, f := range failures {
		if f.Kind() != "invalidDate" {
			t.Fatalf("expected invalidDate, got %s", f.Kind())
		}
	}
	got, ok := report.Render()["C"]
	if !ok || len(got) != 0 {
		t.Fatalf("expected empty list for C, got %v", got)
	}
}

func TestBuild_FailuresDoNotAffectOtherRooms(t *testing.T) {
	report, _, err := Build([]Entry{
		{RoomID: "A", StartDate: "2024-06-01", EndDate: "2024-06-03"},
		{RoomID: "B", StartDate: "garbage", EndDate: "garbage"},
		{RoomID: "A", StartDate: "2024-06-05", EndDate: "2024-06-01"},
		{RoomID: "A", StartDate: "2024-06-10", EndDate: "2024-06-12"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := report.Render()["A"]; !equalRanges(got, []Range{{"2024-06-03", "2024-06-10"}}) {
		t.Fatalf("room A: got %v", got)
	}
}

func TestReport_WithRooms(t *testing.T) {
	report, _, err := Build([]Entry{{RoomID: "A", StartDate: "2024-06-01", EndDate: "2024-06-03"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report.WithRooms("A", "Z")
	rooms := report.Rooms()
	if len(rooms) != 2 || rooms[1] != "Z" {
		t.Fatalf("unexpected rooms: %v", rooms)
	}
	if free, ok := report.Render()["Z"]; !ok || free == nil || len(free) != 0 {
		t.Fatalf("expected empty non-nil list for Z, got %v", free)
	}
}

func TestBuild_Empty(t *testing.T) {
	report, failures, err := Build(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failures) != 0 || len(report.Rooms()) != 0 {
		t.Fatalf("expected empty report, got rooms=%v failures=%v", report.Rooms(), failures)
	}
}
