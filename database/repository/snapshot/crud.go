// File: database/repository/snapshot/crud.go
package snapshotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vacancy/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoSnapshot is returned when nothing has been mirrored yet.
var ErrNoSnapshot = errors.New("no reservation snapshot stored")

// Save inserts a snapshot and returns its ID.
func (r *mongoSnapshotRepo) Save(ctx context.Context, snap models.Snapshot) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, snap); err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	return snap.ID, nil
}

// Latest returns the most recently fetched snapshot.
func (r *mongoSnapshotRepo) Latest(ctx context.Context) (*models.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "fetchedAt", Value: -1}})
	var snap models.Snapshot
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &snap, nil
}

// Prune deletes all but the newest keep snapshots.
func (r *mongoSnapshotRepo) Prune(ctx context.Context, keep int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "fetchedAt", Value: -1}}).
		SetSkip(int64(keep)).
		SetProjection(bson.M{"id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to list old snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var stale []struct {
		ID string `bson:"id"`
	}
	if err := cursor.All(ctx, &stale); err != nil {
		return 0, fmt.Errorf("error decoding snapshots: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]string, len(stale))
	for i, s := range stale {
		ids[i] = s.ID
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return res.DeletedCount, nil
}
