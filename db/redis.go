package db

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

const (
	cachePrefix = "congress:cache:"
	cacheTTL    = 6 * time.Hour
)

// ErrNoRedis means REDIS_URL is unset; callers run uncached.
var ErrNoRedis = errors.New("REDIS_URL not set")

// ConnectRedis connects the optional response cache.
func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return ErrNoRedis
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(context.Background()).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// ResponseCache exposes the Redis connection as the congress client's cache.
// Cache errors are non-fatal: a miss just costs one more API call.
type ResponseCache struct{}

func (ResponseCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := Redis.Get(ctx, cachePrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (ResponseCache) Set(ctx context.Context, key, value string) {
	if err := Redis.Set(ctx, cachePrefix+key, value, cacheTTL).Err(); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}
