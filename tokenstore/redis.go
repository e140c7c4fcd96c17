package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, for processes that share one session
// across instances or survive restarts without local disk. Keys are stored
// as-is unless a prefix is configured.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOption customizes a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces all keys with the given prefix. Useful when the
// Redis database is shared with other data.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a RedisStore on top of an existing client. The store
// does not own the client and never closes it.
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get implements Store. A missing key maps to the contract's empty result,
// not an error.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: redis get %s: %w", s.prefix+key, err)
	}

	return value, nil
}

// Set implements Store. Values are stored without expiry; the token manager
// owns the token lifecycle.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis set %s: %w", s.prefix+key, err)
	}

	return nil
}

// Remove implements Store. DEL on an absent key is already a no-op in Redis.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis del %s: %w", s.prefix+key, err)
	}

	return nil
}
