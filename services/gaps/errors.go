package gaps

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate means a bound did not parse to a calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidRange means the end date precedes the start date.
	ErrInvalidRange = errors.New("invalid range")
	// ErrPreconditionViolation means the resolver was handed an interval
	// that never went through validation.
	ErrPreconditionViolation = errors.New("precondition violation")
)

// ValidationFailure records one rejected input tuple.
type ValidationFailure struct {
	RoomID   string `json:"roomId"`
	RawStart string `json:"startDate"`
	RawEnd   string `json:"endDate"`
	Err      error  `json:"-"`
}

func (f ValidationFailure) Error() string {
	return fmt.Sprintf("room %s [%s, %s]: %v", f.RoomID, f.RawStart, f.RawEnd, f.Err)
}

func (f ValidationFailure) Unwrap() error { return f.Err }

// Kind is a short label for the failure, used in API responses.
func (f ValidationFailure) Kind() string {
	switch {
	case errors.Is(f.Err, ErrInvalidDate):
		return "invalidDate"
	case errors.Is(f.Err, ErrInvalidRange):
		return "invalidRange"
	}
	return "unknown"
}
