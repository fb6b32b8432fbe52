package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each collection under the key <prefix><collection>.
// Keys carry no TTL: Redis is the system of record when this driver is used.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a RedisStore. prefix namespaces the keys,
// e.g. "discgolf:" yields "discgolf:discs".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(collection string) string {
	return s.prefix + collection
}

// Load fetches the collection's document. A missing key is an empty collection.
func (s *RedisStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := validateName(collection); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.RedisStore.Load: %w", err)
	}
	return data, nil
}

// Save overwrites the collection's document.
func (s *RedisStore) Save(ctx context.Context, collection string, data []byte) error {
	if err := validateName(collection); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("storage.RedisStore.Save: %w", err)
	}
	return nil
}
