// File: models/availability.go
package models

import (
	"time"

	"vacancy/services/gaps"
)

// Report sources.
const (
	SourceLive     = "live"
	SourceCache    = "cache"
	SourceSnapshot = "snapshot"
)

// InvalidRange describes a reservation the report had to skip.
type InvalidRange struct {
	RoomID    string `json:"roomId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// AvailabilityReport is the rendered free-date report served over HTTP and
// cached in Redis. DataAsOf is when the reservations were read from the
// workspace; for snapshot reports it is older than GeneratedAt.
type AvailabilityReport struct {
	EmptyDatesByRoom map[string][]gaps.Range `json:"emptyDatesByRoom"`
	RoomOrder        []string                `json:"roomOrder"`
	RoomNames        map[string]string       `json:"roomNames"`
	InvalidRanges    []InvalidRange          `json:"invalidRanges,omitempty"`
	Source           string                  `json:"source"`
	GeneratedAt      time.Time               `json:"generatedAt"`
	DataAsOf         time.Time               `json:"dataAsOf"`
}

// RoomLabel returns the room's name, or its ID when the listings database
// does not know it.
func (r *AvailabilityReport) RoomLabel(roomID string) string {
	if name, ok := r.RoomNames[roomID]; ok && name != "" {
		return name
	}
	return roomID
}

// Snapshot is one fetched set of reservation entries, mirrored to MongoDB.
type Snapshot struct {
	ID        string       `bson:"id" json:"id"`
	FetchedAt time.Time    `bson:"fetchedAt" json:"fetchedAt"`
	Entries   []gaps.Entry `bson:"entries" json:"entries"`
	Rooms     []Room       `bson:"rooms" json:"rooms"`
}
