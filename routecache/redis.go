package routecache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisStore keeps entries in Redis without expiry.
type redisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis returns a Store backed by client. Keys are stored under prefix.
func NewRedis(client redis.UniversalClient, prefix string) Store {
	return &redisStore{client: client, prefix: prefix}
}

// NewRedisURL connects to the server described by a redis:// URL.
func NewRedisURL(rawURL, prefix string) (Store, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("routecache: parse redis url: %w", err)
	}

	return NewRedis(redis.NewClient(opts), prefix), nil
}

func (s *redisStore) key(key string) string {
	return s.prefix + key
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}

	return v, err
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *redisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
