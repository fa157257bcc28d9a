package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 5 * time.Second

// RedisStore persists the snapshot as one Redis string value per namespace.
// Snapshots have no TTL; a session's cart survives until it is cleared.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    fmt.Sprintf("snapshot:%s", namespace),
	}
}

func RedisFactory(client *redis.Client) Factory {
	return func(namespace string) Store {
		return NewRedisStore(client, namespace)
	}
}

func (s *RedisStore) Load(v interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", s.key, err)
	}
	return json.Unmarshal(data, v)
}

func (s *RedisStore) Save(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.key, err)
	}
	return nil
}
