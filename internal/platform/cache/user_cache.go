// Package cache provides the Redis-backed cache store for the service.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"user_service/internal/feature/users/usecase"
)

// RedisCache implements usecase.CacheRepository on top of Redis.
// Values are opaque bytes; keys are prefixed with the configured namespace.
// The cache is best effort: a nil client or an unreachable Redis degrades
// reads to usecase.ErrCacheMiss and turns writes into no-ops, so callers
// fall back to the durable store instead of failing.
type RedisCache struct {
	client    *redis.Client
	namespace string
}

// Compile-time check that RedisCache implements CacheRepository.
var _ usecase.CacheRepository = (*RedisCache)(nil)

// NewRedisCache creates a new RedisCache instance.
// client may be nil, in which case every read misses and writes are no-ops.
func NewRedisCache(client *redis.Client, namespace string) *RedisCache {
	return &RedisCache{
		client:    client,
		namespace: namespace,
	}
}

// key returns the namespaced Redis key.
func (c *RedisCache) key(k string) string {
	if c.namespace == "" {
		return k
	}
	return fmt.Sprintf("%s:%s", c.namespace, k)
}

// Get returns the value stored under key, or usecase.ErrCacheMiss when the
// key is absent or Redis is unavailable.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.client == nil {
		return nil, usecase.ErrCacheMiss
	}
	b, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		// redis.Nil and outages both read as a miss.
		return nil, usecase.ErrCacheMiss
	}
	return b, nil
}

// Set stores value under key with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// Delete removes key. Deleting a missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key(key)).Err()
}
