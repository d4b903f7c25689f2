package cache

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares measured heights across processes
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// Ensure RedisCache implements HeightCache
var _ HeightCache = (*RedisCache)(nil)

// NewRedisCache connects to addr and verifies the connection with PING.
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, &Error{Op: "connect", Message: "redis ping failed for " + addr, Cause: err}
	}
	log.Printf("[CACHE] redis height cache connected: %s", addr)
	return &RedisCache{client: client, ttl: ttl, prefix: "resume-preview:"}, nil
}

// Get returns the cached height. A missing key is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) (float64, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &Error{Op: "get", Message: key, Cause: err}
	}
	h, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, &Error{Op: "get", Message: "corrupt value for " + key, Cause: err}
	}
	return h, true, nil
}

// Set stores height with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, height float64) error {
	val := strconv.FormatFloat(height, 'f', -1, 64)
	if err := c.client.Set(ctx, c.prefix+key, val, c.ttl).Err(); err != nil {
		return &Error{Op: "set", Message: key, Cause: err}
	}
	return nil
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
