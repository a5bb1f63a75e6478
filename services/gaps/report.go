package gaps

import "errors"

// Entry is a raw reservation tuple as read from the reservation store.
type Entry struct {
	RoomID    string `json:"roomId" bson:"roomId"`
	StartDate string `json:"startDate" bson:"startDate"`
	EndDate   string `json:"endDate" bson:"endDate"`
}

// Range is a free interval rendered back to text.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Report maps each room to its free intervals. Rooms keep the order in which
// they were first seen.
type Report struct {
	rooms []string
	free  map[string][]FreeInterval
}

// Build validates every entry, groups the valid stays by room and resolves
// each room's gaps. Invalid entries are returned as failures and leave the
// rest of their room intact; a room whose entries are all invalid still
// appears with no free intervals.
func Build(entries []Entry) (*Report, []ValidationFailure, error) {
	report := &Report{free: make(map[string][]FreeInterval)}
	byRoom := make(map[string][]OccupiedInterval)
	var failures []ValidationFailure

	for _, e := range entries {
		if _, seen := byRoom[e.RoomID]; !seen {
			report.rooms = append(report.rooms, e.RoomID)
			byRoom[e.RoomID] = nil
		}
		iv, err := Normalize(e.RoomID, e.StartDate, e.EndDate)
		if err != nil {
			failures = append(failures, ValidationFailure{
				RoomID:   e.RoomID,
				RawStart: e.StartDate,
				RawEnd:   e.EndDate,
				Err:      err,
			})
			continue
		}
		byRoom[e.RoomID] = append(byRoom[e.RoomID], iv)
	}

	for _, room := range report.rooms {
		free, err := ResolveGaps(room, byRoom[room])
		if err != nil {
			return nil, failures, err
		}
		report.free[room] = free
	}
	return report, failures, nil
}

// WithRooms adds rooms that had no reservations at all, with no free
// intervals.
func (r *Report) WithRooms(ids ...string) *Report {
	for _, id := range ids {
		if _, ok := r.free[id]; ok {
			continue
		}
		r.rooms = append(r.rooms, id)
		r.free[id] = []FreeInterval{}
	}
	return r
}

func (r *Report) Rooms() []string {
	out := make([]string, len(r.rooms))
	copy(out, r.rooms)
	return out
}

// Render formats every bound with DateLayout.
func (r *Report) Render() map[string][]Range {
	out := make(map[string][]Range, len(r.rooms))
	for _, room := range r.rooms {
		ranges := make([]Range, 0, len(r.free[room]))
		for _, f := range r.free[room] {
			ranges = append(ranges, Range{Start: f.Start.String(), End: f.End.String()})
		}
		out[room] = ranges
	}
	return out
}

// IsPrecondition reports whether err signals a caller contract violation
// rather than bad data.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPreconditionViolation)
}
