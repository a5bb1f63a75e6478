package availability

import (
	"context"
	"errors"

	"vacancy/models"
	"vacancy/services/gaps"
)

// ErrSourceUnavailable means neither the reservation workspace nor a stored
// snapshot could supply reservations.
var ErrSourceUnavailable = errors.New("reservation source unavailable")

// AvailabilityService answers which dates each room is free.
type AvailabilityService interface {
	GetReport(ctx context.Context, refresh bool) (*models.AvailabilityReport, error)
	Invalidate(ctx context.Context) error
}

// ReservationSource supplies raw reservation tuples and the room list.
type ReservationSource interface {
	FetchReservationEntries(ctx context.Context) ([]gaps.Entry, error)
	FetchRooms(ctx context.Context) ([]models.Room, error)
}

// ReportCache stores the last rendered report. Get returns nil, nil on a
// miss.
type ReportCache interface {
	Get(ctx context.Context) (*models.AvailabilityReport, error)
	Set(ctx context.Context, report *models.AvailabilityReport) error
	Invalidate(ctx context.Context) error
}
