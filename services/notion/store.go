package notion

import (
	"context"
	"fmt"
	"time"

	"vacancy/models"
	"vacancy/services/gaps"

	"go.uber.org/zap"
)

// Property names used in the reservation workspace.
const (
	PropName        = "Name"
	PropPhone       = "Phone"
	PropPerson      = "Person"
	PropListings    = "Listings"
	PropTotalPrice  = "Total Price"
	PropDeposit     = "Kapora"
	PropCheckDate   = "Check Date"
	PropAmount      = "Amount"
	PropCleaningDay = "Temizlik Zamanı"
)

// Databases names the Notion databases the store reads and writes.
type Databases struct {
	Reservations string
	Listings     string
	Persons      string
	Cleanings    string
}

// Store maps the reservation workspace onto the service's models.
type Store struct {
	client *Client
	dbs    Databases
	logger *zap.Logger
}

func NewStore(client *Client, dbs Databases, logger *zap.Logger) *Store {
	return &Store{client: client, dbs: dbs, logger: logger}
}

// FetchReservationEntries reads every reservation as a raw (room, start,
// end) tuple. Rows without a listing or a check date are skipped and logged.
func (s *Store) FetchReservationEntries(ctx context.Context) ([]gaps.Entry, error) {
	pages, err := s.client.QueryDatabase(ctx, s.dbs.Reservations, nil)
	if err != nil {
		return nil, err
	}
	entries := make([]gaps.Entry, 0, len(pages))
	for _, page := range pages {
		roomID, ok := page.FirstRelation(PropListings)
		if !ok {
			s.logger.Warn("reservation without listing skipped", zap.String("pageId", page.ID))
			continue
		}
		start, end, ok := page.DateRange(PropCheckDate)
		if !ok {
			s.logger.Warn("reservation without check date skipped", zap.String("pageId", page.ID))
			continue
		}
		entries = append(entries, gaps.Entry{RoomID: roomID, StartDate: start, EndDate: end})
	}
	return entries, nil
}

// FetchRooms lists the bookable rooms.
func (s *Store) FetchRooms(ctx context.Context) ([]models.Room, error) {
	pages, err := s.client.QueryDatabase(ctx, s.dbs.Listings, nil)
	if err != nil {
		return nil, err
	}
	rooms := make([]models.Room, 0, len(pages))
	for _, page := range pages {
		rooms = append(rooms, models.Room{ID: page.ID, Name: page.Title(PropName)})
	}
	return rooms, nil
}

// FetchPersons lists guests.
func (s *Store) FetchPersons(ctx context.Context) ([]models.Person, error) {
	pages, err := s.client.QueryDatabase(ctx, s.dbs.Persons, nil)
	if err != nil {
		return nil, err
	}
	persons := make([]models.Person, 0, len(pages))
	for _, page := range pages {
		persons = append(persons, models.Person{
			ID:    page.ID,
			Name:  page.Title(PropName),
			Phone: page.Text(PropPhone),
		})
	}
	return persons, nil
}

// FetchCheckIns returns reservations whose check date equals one of days
// (yyyy-MM-dd).
func (s *Store) FetchCheckIns(ctx context.Context, days ...string) ([]models.CheckIn, error) {
	if len(days) == 0 {
		return nil, nil
	}
	conditions := make([]map[string]any, 0, len(days))
	for _, day := range days {
		conditions = append(conditions, map[string]any{
			"property": PropCheckDate,
			"date":     map[string]any{"equals": day},
		})
	}
	pages, err := s.client.QueryDatabase(ctx, s.dbs.Reservations, map[string]any{"or": conditions})
	if err != nil {
		return nil, err
	}

	checkIns := make([]models.CheckIn, 0, len(pages))
	for _, page := range pages {
		ci := models.CheckIn{}
		ci.PersonID, _ = page.FirstRelation(PropPerson)
		ci.RoomID, _ = page.FirstRelation(PropListings)
		ci.CheckDate, _, _ = page.DateRange(PropCheckDate)
		checkIns = append(checkIns, ci)
	}
	return checkIns, nil
}

// CreatePerson adds a guest and returns the page ID.
func (s *Store) CreatePerson(ctx context.Context, name, phone string) (string, error) {
	props := map[string]Property{
		PropName:  TitleValue(name),
		PropPhone: TextValue(phone),
	}
	id, err := s.client.CreatePage(ctx, s.dbs.Persons, props)
	if err != nil {
		return "", fmt.Errorf("error adding person: %w", err)
	}
	return id, nil
}

// CreateReservation adds a reservation linked to a person and a room.
func (s *Store) CreateReservation(ctx context.Context, r models.Reservation) (string, error) {
	props := map[string]Property{
		PropName:       TitleValue(r.Name),
		PropPerson:     RelationValue(r.PersonID),
		PropListings:   RelationValue(r.RoomID),
		PropTotalPrice: NumberValue(r.TotalPrice),
		PropDeposit:    NumberValue(r.Deposit),
		PropCheckDate:  DateRangeValue(r.StartDate, r.EndDate),
	}
	id, err := s.client.CreatePage(ctx, s.dbs.Reservations, props)
	if err != nil {
		return "", fmt.Errorf("error adding reservation: %w", err)
	}
	return id, nil
}

// CreateCleaning logs a cleaning visit for a room.
func (s *Store) CreateCleaning(ctx context.Context, c models.Cleaning) (string, error) {
	if s.dbs.Cleanings == "" {
		return "", fmt.Errorf("cleaning database is not configured")
	}
	props := map[string]Property{
		PropAmount:      NumberValue(c.Amount),
		PropCleaningDay: DateRangeValue(c.At.UTC().Format(time.RFC3339), ""),
		PropListings:    RelationValue(c.RoomID),
	}
	id, err := s.client.CreatePage(ctx, s.dbs.Cleanings, props)
	if err != nil {
		return "", fmt.Errorf("error adding cleaning: %w", err)
	}
	return id, nil
}
