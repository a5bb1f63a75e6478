package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	snapshotRepo "vacancy/database/repository/snapshot"
	"vacancy/models"
	"vacancy/services/gaps"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultAvailabilityService fetches reservations, mirrors them, computes
// the free-date report and caches it. Snapshots and Cache may be nil.
type DefaultAvailabilityService struct {
	Source        ReservationSource
	Snapshots     snapshotRepo.SnapshotRepository
	Cache         ReportCache
	Logger        *zap.Logger
	KeepSnapshots int
	Now           func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetReport returns the availability report. A cached report is served
// unless refresh is set. When the workspace cannot be read the latest
// snapshot is used instead.
func (s *DefaultAvailabilityService) GetReport(ctx context.Context, refresh bool) (*models.AvailabilityReport, error) {
	if !refresh && s.Cache != nil {
		cached, err := s.Cache.Get(ctx)
		if err != nil {
			s.Logger.Warn("availability cache read failed", zap.Error(err))
		} else if cached != nil {
			cached.Source = models.SourceCache
			return cached, nil
		}
	}

	source, asOf := models.SourceLive, s.now()
	entries, rooms, err := s.fetch(ctx)
	if err != nil {
		s.Logger.Error("failed to fetch reservations", zap.Error(err))
		snap, snapErr := s.latestSnapshot(ctx)
		if snapErr != nil {
			return nil, fmt.Errorf("%w: %v (snapshot: %v)", ErrSourceUnavailable, err, snapErr)
		}
		s.Logger.Warn("serving availability from snapshot",
			zap.String("snapshotId", snap.ID), zap.Time("fetchedAt", snap.FetchedAt))
		entries, rooms, source, asOf = snap.Entries, snap.Rooms, models.SourceSnapshot, snap.FetchedAt
	} else {
		s.mirror(ctx, entries, rooms, asOf)
	}

	report, err := BuildReport(entries, rooms, source, s.now())
	if err != nil {
		return nil, err
	}
	report.DataAsOf = asOf
	for _, bad := range report.InvalidRanges {
		s.Logger.Warn("invalid reservation range skipped",
			zap.String("roomId", bad.RoomID),
			zap.String("startDate", bad.StartDate),
			zap.String("endDate", bad.EndDate),
			zap.String("reason", bad.Reason))
	}

	if source == models.SourceLive && s.Cache != nil {
		if err := s.Cache.Set(ctx, report); err != nil {
			s.Logger.Warn("availability cache write failed", zap.Error(err))
		}
	}
	return report, nil
}

// Invalidate drops the cached report, e.g. after a reservation is added.
func (s *DefaultAvailabilityService) Invalidate(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Invalidate(ctx)
}

func (s *DefaultAvailabilityService) fetch(ctx context.Context) ([]gaps.Entry, []models.Room, error) {
	var (
		entries []gaps.Entry
		rooms   []models.Room
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.Source.FetchReservationEntries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rooms, err = s.Source.FetchRooms(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return entries, rooms, nil
}

func (s *DefaultAvailabilityService) latestSnapshot(ctx context.Context) (*models.Snapshot, error) {
	if s.Snapshots == nil {
		return nil, errors.New("snapshot mirror disabled")
	}
	return s.Snapshots.Latest(ctx)
}

func (s *DefaultAvailabilityService) mirror(ctx context.Context, entries []gaps.Entry, rooms []models.Room, fetchedAt time.Time) {
	if s.Snapshots == nil {
		return
	}
	id, err := s.Snapshots.Save(ctx, models.Snapshot{FetchedAt: fetchedAt, Entries: entries, Rooms: rooms})
	if err != nil {
		s.Logger.Warn("failed to mirror reservations", zap.Error(err))
		return
	}
	s.Logger.Debug("reservations mirrored", zap.String("snapshotId", id), zap.Int("entries", len(entries)))
	if s.KeepSnapshots > 0 {
		if _, err := s.Snapshots.Prune(ctx, s.KeepSnapshots); err != nil {
			s.Logger.Warn("failed to prune snapshots", zap.Error(err))
		}
	}
}

// BuildReport computes the free intervals for every room that has
// reservations or appears in rooms.
func BuildReport(entries []gaps.Entry, rooms []models.Room, source string, now time.Time) (*models.AvailabilityReport, error) {
	report, failures, err := gaps.Build(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to compute availability: %w", err)
	}

	names := make(map[string]string, len(rooms))
	ids := make([]string, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
		if room.Name != "" {
			names[room.ID] = room.Name
		}
	}
	report.WithRooms(ids...)

	view := &models.AvailabilityReport{
		EmptyDatesByRoom: report.Render(),
		RoomOrder:        report.Rooms(),
		RoomNames:        names,
		Source:           source,
		GeneratedAt:      now,
		DataAsOf:         now,
	}
	for _, f := range failures {
		view.InvalidRanges = append(view.InvalidRanges, models.InvalidRange{
			RoomID:    f.RoomID,
			StartDate: f.RawStart,
			EndDate:   f.RawEnd,
			Reason:    f.Kind(),
		})
	}
	return view, nil
}
