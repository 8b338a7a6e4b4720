package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"prompt_market/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when the key is absent.
var ErrCacheMiss = fmt.Errorf("cache miss")

// CacheService is the read-through cache used by catalog reads.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	InvalidatePattern(ctx context.Context, pattern string) error
}

// RedisCache implements CacheService on a single redis client.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates the redis-backed cache service.
func NewRedisCache(client *redis.Client) CacheService {
	prefix := "prompt-market:"
	if config.GlobalConfig.Server.Mode == "test" {
		prefix = "test:" + prefix
	}
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

func (c *RedisCache) getKey(key string) string {
	return c.prefix + key
}

// Get fetches and unmarshals a cached value into dest.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	fullKey := c.getKey(key)
	val, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

// Set marshals and stores a value with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	fullKey := c.getKey(key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

// Delete removes a single key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	fullKey := c.getKey(key)
	return c.client.Del(ctx, fullKey).Err()
}

// Exists reports whether the key is present.
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	fullKey := c.getKey(key)
	result, err := c.client.Exists(ctx, fullKey).Result()
	return result > 0, err
}

// InvalidatePattern deletes every key matching pattern via SCAN.
func (c *RedisCache) InvalidatePattern(ctx context.Context, pattern string) error {
	fullPattern := c.getKey(pattern)

	iter := c.client.Scan(ctx, 0, fullPattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache invalidate error: %w", err)
		}
	}
	return iter.Err()
}
