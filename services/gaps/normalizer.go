package gaps

import "fmt"

// OccupiedInterval is one reservation's stay, inclusive of both days.
type OccupiedInterval struct {
	RoomID string
	Start  Date
	End    Date
}

// Normalize validates a raw (start, end) pair for a room and returns the
// stay truncated to whole days. A stay that starts and ends on the same day
// occupies that single day.
func Normalize(roomID, rawStart, rawEnd string) (OccupiedInterval, error) {
	start, ok := ParseDate(rawStart)
	if !ok {
		return OccupiedInterval{}, fmt.Errorf("start %q: %w", rawStart, ErrInvalidDate)
	}
	end, ok := ParseDate(rawEnd)
	if !ok {
		return OccupiedInterval{}, fmt.Errorf("end %q: %w", rawEnd, ErrInvalidDate)
	}
	if end.Before(start) {
		return OccupiedInterval{}, fmt.Errorf("end %s before start %s: %w", end, start, ErrInvalidRange)
	}
	return OccupiedInterval{RoomID: roomID, Start: start, End: end}, nil
}
