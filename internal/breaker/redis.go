package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists breaker state in Redis under a shared key prefix so
// multiple instances see the same per-tenant state. Only Incr is atomic
// across instances; compound read-modify-write sequences built on top of
// Get/Set (the daily savings rollover) are not transactional.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a store backed by the given Redis client
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "wastegate"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) namespaced(key string) string {
	return s.prefix + ":" + key
}

// Get returns the value for key; a missing key is not an error
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.namespaced(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a value under key with an optional TTL
func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	encoded, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.namespaced(key), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Incr atomically increments the integer stored at key
func (s *RedisStore) Incr(ctx context.Context, key string) (int64, error) {
	value, err := s.client.Incr(ctx, s.namespaced(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return value, nil
}

// Delete removes key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.namespaced(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
