package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dzstore/storefront-api/logger"
)

// Revalidator marks a UI path stale after a mutating action so the next
// render re-fetches. Fire-and-forget: failures are logged, never surfaced.
type Revalidator interface {
	Revalidate(path string)
}

// RedisRevalidator drops the cached page entry for a path.
type RedisRevalidator struct {
	client *redis.Client
}

// NewRedisClient connects to Redis from a URL and verifies the connection.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func NewRedisRevalidator(client *redis.Client) *RedisRevalidator {
	return &RedisRevalidator{client: client}
}

func (r *RedisRevalidator) Revalidate(path string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.client.Del(ctx, "page:"+path).Err(); err != nil {
			logger.Log.Warn("revalidate failed", zap.String("path", path), zap.Error(err))
		}
	}()
}

// Noop is used when no Redis URL is configured.
type Noop struct{}

func (Noop) Revalidate(string) {}
