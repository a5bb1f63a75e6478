package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	snapshotRepo "vacancy/database/repository/snapshot"
	"vacancy/models"
	"vacancy/services/gaps"

	"go.uber.org/zap"
)

type fakeSource struct {
	entries []gaps.Entry
	rooms   []models.Room
	err     error
	fetches int
}

func (f *fakeSource) FetchReservationEntries(ctx context.Context) ([]gaps.Entry, error) {
	f.fetches++
	return f.entries, f.err
}

func (f *fakeSource) FetchRooms(ctx context.Context) ([]models.Room, error) {
	return f.rooms, nil
}

type fakeCache struct {
	report *models.AvailabilityReport
	sets   int
}

func (c *fakeCache) Get(ctx context.Context) (*models.AvailabilityReport, error) {
	if c.report == nil {
		return nil, nil
	}
	cp := *c.report
	return &cp, nil
}

func (c *fakeCache) Set(ctx context.Context, r *models.AvailabilityReport) error {
	cp := *r
	c.report = &cp
	c.sets++
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.report = nil
	return nil
}

type fakeSnapshots struct {
	saved  []models.Snapshot
	pruned int
}

func (s *fakeSnapshots) Save(ctx context.Context, snap models.Snapshot) (string, error) {
	snap.ID = "snap"
	s.saved = append(s.saved, snap)
	return snap.ID, nil
}

func (s *fakeSnapshots) Latest(ctx context.Context) (*models.Snapshot, error) {
	if len(s.saved) == 0 {
		return nil, snapshotRepo.ErrNoSnapshot
	}
	snap := s.saved[len(s.saved)-1]
	return &snap, nil
}

func (s *fakeSnapshots) Prune(ctx context.Context, keep int) (int64, error) {
	s.pruned++
	return 0, nil
}

func (s *fakeSnapshots) EnsureIndexes(ctx context.Context) error { return nil }

var fixedNow = time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)

func newService(src *fakeSource, cache *fakeCache, snaps *fakeSnapshots) *DefaultAvailabilityService {
	svc := &DefaultAvailabilityService{
		Source:        src,
		Logger:        zap.NewNop(),
		KeepSnapshots: 5,
		Now:           func() time.Time { return fixedNow },
	}
	if cache != nil {
		svc.Cache = cache
	}
	if snaps != nil {
		svc.Snapshots = snaps
	}
	return svc
}

func sampleSource() *fakeSource {
	return &fakeSource{
		entries: []gaps.Entry{
			{RoomID: "A", StartDate: "2024-06-01", EndDate: "2024-06-03"},
			{RoomID: "A", StartDate: "2024-06-10", EndDate: "2024-06-12"},
			{RoomID: "B", StartDate: "2024-07-05", EndDate: "2024-07-01"},
			{RoomID: "B", StartDate: "2024-07-01", EndDate: "2024-07-05"},
		},
		rooms: []models.Room{
			{ID: "A", Name: "Deniz"},
			{ID: "B"},
			{ID: "C", Name: "Bahce"},
		},
	}
}

func TestGetReport_Live(t *testing.T) {
	cache := &fakeCache{}
	snaps := &fakeSnapshots{}
	svc := newService(sampleSource(), cache, snaps)

	report, err := svc.GetReport(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Source != models.SourceLive {
		t.Fatalf("expected live source, got %s", report.Source)
	}
	if got := report.EmptyDatesByRoom["A"]; len(got) != 1 || got[0] != (gaps.Range{Start: "2024-06-03", End: "2024-06-10"}) {
		t.Fatalf("room A: %v", got)
	}
	if got, ok := report.EmptyDatesByRoom["B"]; !ok || len(got) != 0 {
		t.Fatalf("room B: %v", got)
	}
	if got, ok := report.EmptyDatesByRoom["C"]; !ok || len(got) != 0 {
		t.Fatalf("room C should be present with no gaps: %v", got)
	}
	if len(report.InvalidRanges) != 1 || report.InvalidRanges[0].Reason != "invalidRange" {
		t.Fatalf("unexpected invalid ranges: %+v", report.InvalidRanges)
	}
	if report.RoomLabel("A") != "Deniz" || report.RoomLabel("B") != "B" {
		t.Fatalf("unexpected labels %q %q", report.RoomLabel("A"), report.RoomLabel("B"))
	}
	if !report.GeneratedAt.Equal(fixedNow) || !report.DataAsOf.Equal(fixedNow) {
		t.Fatalf("unexpected times generatedAt=%s dataAsOf=%s", report.GeneratedAt, report.DataAsOf)
	}
	if cache.sets != 1 {
		t.Fatalf("expected report cached once, got %d", cache.sets)
	}
	if len(snaps.saved) != 1 || snaps.pruned != 1 {
		t.Fatalf("expected snapshot saved and pruned, got %d/%d", len(snaps.saved), snaps.pruned)
	}
}

func TestGetReport_ServesCache(t *testing.T) {
	src := sampleSource()
	cache := &fakeCache{}
	svc := newService(src, cache, nil)

	if _, err := svc.GetReport(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report, err := svc.GetReport(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Source != models.SourceCache {
		t.Fatalf("expected cache source, got %s", report.Source)
	}
	if src.fetches != 1 {
		t.Fatalf("expected one fetch, got %d", src.fetches)
	}

	if _, err := svc.GetReport(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.fetches != 2 {
		t.Fatalf("refresh should bypass cache, fetches=%d", src.fetches)
	}
}

func TestGetReport_FallsBackToSnapshot(t *testing.T) {
	src := sampleSource()
	cache := &fakeCache{}
	snaps := &fakeSnapshots{}
	svc := newService(src, cache, snaps)

	if _, err := svc.GetReport(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src.err = errors.New("notion down")
	cache.report = nil

	report, err := svc.GetReport(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Source != models.SourceSnapshot {
		t.Fatalf("expected snapshot source, got %s", report.Source)
	}
	if got := report.EmptyDatesByRoom["A"]; len(got) != 1 {
		t.Fatalf("room A from snapshot: %v", got)
	}
	if cache.report != nil {
		t.Fatal("snapshot reports must not be cached")
	}
}

func TestGetReport_SnapshotKeepsFetchTime(t *testing.T) {
	src := sampleSource()
	snaps := &fakeSnapshots{}
	svc := newService(src, nil, snaps)

	if _, err := svc.GetReport(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snaps.saved) != 1 || !snaps.saved[0].FetchedAt.Equal(fixedNow) {
		t.Fatalf("expected snapshot stamped with fetch time, got %+v", snaps.saved)
	}

	later := fixedNow.Add(72 * time.Hour)
	svc.Now = func() time.Time { return later }
	src.err = errors.New("notion down")

	report, err := svc.GetReport(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Source != models.SourceSnapshot {
		t.Fatalf("expected snapshot source, got %s", report.Source)
	}
	if !report.DataAsOf.Equal(fixedNow) {
		t.Fatalf("expected data time %s, got %s", fixedNow, report.DataAsOf)
	}
	if !report.GeneratedAt.Equal(later) {
		t.Fatalf("expected generation time %s, got %s", later, report.GeneratedAt)
	}
}

func TestGetReport_NoSource(t *testing.T) {
	src := &fakeSource{err: errors.New("notion down")}
	svc := newService(src, nil, &fakeSnapshots{})

	_, err := svc.GetReport(context.Background(), false)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestInvalidate(t *testing.T) {
	cache := &fakeCache{report: &models.AvailabilityReport{}}
	svc := newService(sampleSource(), cache, nil)
	if err := svc.Invalidate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.report != nil {
		t.Fatal("expected cache cleared")
	}

	noCache := newService(sampleSource(), nil, nil)
	if err := noCache.Invalidate(context.Background()); err != nil {
		t.Fatalf("unexpected error without cache: %v", err)
	}
}
