// File: services/availability/cache.go
package availability

import (
	"context"
	"encoding/json"
	"time"

	"vacancy/models"

	"github.com/go-redis/redis/v8"
)

const reportCacheKey = "availability:report"

type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{client: client, ttl: ttl}
}

func (s *RedisReportCache) Get(ctx context.Context) (*models.AvailabilityReport, error) {
	data, err := s.client.Get(ctx, reportCacheKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report models.AvailabilityReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *RedisReportCache) Set(ctx context.Context, report *models.AvailabilityReport) error {
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, reportCacheKey, b, s.ttl).Err()
}

func (s *RedisReportCache) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, reportCacheKey).Err()
}
