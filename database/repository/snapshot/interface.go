// File: database/repository/snapshot/interface.go
package snapshotRepo

import (
	"context"

	"vacancy/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SnapshotRepository mirrors fetched reservation sets so availability can be
// answered while the reservation workspace is unreachable.
type SnapshotRepository interface {
	Save(ctx context.Context, snap models.Snapshot) (string, error)
	Latest(ctx context.Context) (*models.Snapshot, error)
	Prune(ctx context.Context, keep int) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoSnapshotRepo struct {
	coll *mongo.Collection
}

// NewMongoSnapshotRepo constructs a MongoDB SnapshotRepository.
func NewMongoSnapshotRepo(db *mongo.Database) SnapshotRepository {
	return &mongoSnapshotRepo{
		coll: db.Collection("reservation_snapshots"),
	}
}
