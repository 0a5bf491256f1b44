package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"
	"time" // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// JSONCache stores values of type T as JSON under prefixed Redis keys with a fixed TTL.
type JSONCache[T any] struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewJSONCache returns a cache writing keys as prefix+key.
func NewJSONCache[T any](rdb redis.Cmdable, prefix string, ttl time.Duration) *JSONCache[T] {
	return &JSONCache[T]{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Get returns the cached value; found is false when the key does not exist or has expired.
func (c *JSONCache[T]) Get(ctx context.Context, key string) (value T, found bool, err error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, false, nil // Key does not exist
	} else if err != nil {
		return value, false, err // Other Redis error
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, err
	}
	return value, true, nil
}

// Set stores value for the cache TTL.
func (c *JSONCache[T]) Set(ctx context.Context, key string, value T) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, b, c.ttl).Err()
}
