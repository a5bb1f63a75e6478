package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vacancy/models"
	"vacancy/services/gaps"
	"vacancy/utils"

	"go.uber.org/zap"
)

// ValidationError is returned for input the caller must correct.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReservationService writes new reservations and cleaning visits.
type ReservationService interface {
	AddReservation(ctx context.Context, input models.ReservationInput) (string, error)
	LogCleaning(ctx context.Context, input models.CleaningInput) (string, error)
}

// Writer persists records to the reservation workspace.
type Writer interface {
	CreatePerson(ctx context.Context, name, phone string) (string, error)
	CreateReservation(ctx context.Context, r models.Reservation) (string, error)
	CreateCleaning(ctx context.Context, c models.Cleaning) (string, error)
}

// Invalidator drops cached availability after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type DefaultReservationService struct {
	Store          Writer
	Availability   Invalidator
	CleaningAmount float64
	Logger         *zap.Logger
	Now            func() time.Time
}

// AddReservation creates the guest and then the reservation pointing at it.
func (s *DefaultReservationService) AddReservation(ctx context.Context, input models.ReservationInput) (string, error) {
	start, err := utils.ConvertToISODate(input.StartDate)
	if err != nil {
		return "", &ValidationError{Field: "startDate", Message: err.Error()}
	}
	end, err := utils.ConvertToISODate(input.EndDate)
	if err != nil {
		return "", &ValidationError{Field: "endDate", Message: err.Error()}
	}
	if _, err := gaps.Normalize(input.RoomID, start, end); err != nil {
		if errors.Is(err, gaps.ErrInvalidRange) {
			return "", &ValidationError{Field: "endDate", Message: "end date is before start date"}
		}
		return "", &ValidationError{Field: "startDate", Message: err.Error()}
	}

	personID, err := s.Store.CreatePerson(ctx, input.PersonName, input.PersonPhone)
	if err != nil {
		return "", err
	}
	id, err := s.Store.CreateReservation(ctx, models.Reservation{
		Name:       input.Name,
		PersonID:   personID,
		RoomID:     input.RoomID,
		TotalPrice: input.TotalPrice,
		Deposit:    input.Deposit,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return "", err
	}
	s.invalidate(ctx)
	s.Logger.Info("reservation added",
		zap.String("reservationId", id),
		zap.String("roomId", input.RoomID),
		zap.String("startDate", start),
		zap.String("endDate", end))
	return id, nil
}

// LogCleaning records a cleaning visit for a room at the current time.
func (s *DefaultReservationService) LogCleaning(ctx context.Context, input models.CleaningInput) (string, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	id, err := s.Store.CreateCleaning(ctx, models.Cleaning{
		RoomID: input.RoomID,
		Amount: s.CleaningAmount,
		At:     now,
	})
	if err != nil {
		return "", err
	}
	s.Logger.Info("cleaning logged", zap.String("cleaningId", id), zap.String("roomId", input.RoomID))
	return id, nil
}

func (s *DefaultReservationService) invalidate(ctx context.Context) {
	if s.Availability == nil {
		return
	}
	if err := s.Availability.Invalidate(ctx); err != nil {
		s.Logger.Warn("failed to invalidate availability cache", zap.Error(err))
	}
}
