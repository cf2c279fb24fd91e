// Package redis provides the Redis client used for session storage.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"draft_backend/internal/platform/config"
)

// NewClient opens a Redis connection from the given configuration and
// verifies it with a ping.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	addr := cfg.Host + ":" + cfg.Port

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("redis connection successful", "address", addr)
	return rdb, nil
}
