// ABOUTME: Response cache for coaching summaries backed by Redis.
// ABOUTME: Keys hash provider, model, and digest so identical requests reuse answers.
package coach

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores summaries by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CacheKey derives the cache key for a request.
func CacheKey(provider Provider, model, digest string) string {
	sum := sha256.Sum256([]byte(string(provider) + "\x00" + model + "\x00" + digest))
	return "fitlog:coach:" + hex.EncodeToString(sum[:])
}

// RedisCache implements Cache on a go-redis client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to addr.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the cached value, reporting false on a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value under key for ttl.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
