// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"vacancy/config"

	"github.com/go-redis/redis/v8"
)

// NewCacheClient connects the generic Redis cache client and checks it with
// a ping.
func NewCacheClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	return client, nil
}
