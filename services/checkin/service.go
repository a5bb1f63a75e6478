package checkin

import (
	"context"
	"time"

	"vacancy/models"

	"golang.org/x/sync/errgroup"
)

// CheckInService lists guests arriving soon.
type CheckInService interface {
	Upcoming(ctx context.Context) ([]models.CheckIn, error)
}

// Source reads check-ins and the records they reference.
type Source interface {
	FetchCheckIns(ctx context.Context, days ...string) ([]models.CheckIn, error)
	FetchRooms(ctx context.Context) ([]models.Room, error)
	FetchPersons(ctx context.Context) ([]models.Person, error)
}

type DefaultCheckInService struct {
	Source   Source
	Location *time.Location
	Now      func() time.Time
}

// Days returns today's and tomorrow's dates in loc as yyyy-MM-dd.
func Days(now time.Time, loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}
	today := now.In(loc)
	return []string{
		today.Format("2006-01-02"),
		today.AddDate(0, 0, 1).Format("2006-01-02"),
	}
}

// Upcoming returns reservations checking in today or tomorrow with person
// and room names filled in where known.
func (s *DefaultCheckInService) Upcoming(ctx context.Context) ([]models.CheckIn, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	var (
		checkIns []models.CheckIn
		rooms    []models.Room
		persons  []models.Person
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		checkIns, err = s.Source.FetchCheckIns(gctx, Days(now, s.Location)...)
		return err
	})
	g.Go(func() error {
		var err error
		rooms, err = s.Source.FetchRooms(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		persons, err = s.Source.FetchPersons(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	roomNames := make(map[string]string, len(rooms))
	for _, r := range rooms {
		roomNames[r.ID] = r.Name
	}
	personNames := make(map[string]string, len(persons))
	for _, p := range persons {
		personNames[p.ID] = p.Name
	}
	for i := range checkIns {
		checkIns[i].RoomName = roomNames[checkIns[i].RoomID]
		checkIns[i].PersonName = personNames[checkIns[i].PersonID]
	}
	return checkIns, nil
}
