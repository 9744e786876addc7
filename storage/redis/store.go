package redis

import (
	"context"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/tasklyst/backend/storage"
)

// Store is a Redis-backed key-value store. Keys are prefixed so several
// deployments can share one Redis database.
type Store struct {
	client *redislib.Client
	prefix string
}

// NewStore creates a Redis-backed store around an existing client.
func NewStore(client *redislib.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "tasklyst:"
	}
	return &Store{
		client: client,
		prefix: prefix,
	}
}

func (s *Store) Read(ctx context.Context, key string) (string, error) {
	result, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == redislib.Nil {
			return "", storage.ErrKeyNotFound
		}
		return "", err
	}
	return result, nil
}

func (s *Store) Write(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *Store) key(k string) string {
	return fmt.Sprintf("%s%s", s.prefix, k)
}

var _ storage.Store = (*Store)(nil)
