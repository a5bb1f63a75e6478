package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthMonitor keeps the latest health snapshot of the backing stores.
// Either client may be nil when that store is not configured.
type HealthMonitor struct {
	redis *redis.Client
	mongo *mongo.Client

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) *HealthMonitor {
	return &HealthMonitor{redis: redisClient, mongo: mongoClient}
}

// Status returns latest stored health snapshot.
func (h *HealthMonitor) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Check pings both stores once and records the result.
func (h *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now()}
	if h.redis != nil {
		status.Redis = h.redis.Ping(ctx).Err() == nil
	}
	if h.mongo != nil {
		status.Mongo = h.mongo.Ping(ctx, nil) == nil
	}

	h.mu.Lock()
	h.current = status
	h.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx is cancelled.
func (h *HealthMonitor) Start(ctx context.Context, every time.Duration) {
	go func() {
		h.Check(ctx)
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Check(ctx)
			}
		}
	}()
}
