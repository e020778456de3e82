// db/kv.go
package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KV is the persistence port the DAOs are written against. Records are JSON
// documents grouped by collection; one Redis hash backs each collection.
type KV interface {
	Put(ctx context.Context, collection, id string, value []byte) error
	Get(ctx context.Context, collection, id string) ([]byte, bool, error)
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) (map[string][]byte, error)
}

// RedisKV stores each collection in a hash keyed `conformity:<collection>`.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func collectionKey(collection string) string {
	return "conformity:" + collection
}

func (s *RedisKV) Put(ctx context.Context, collection, id string, value []byte) error {
	if err := s.client.HSet(ctx, collectionKey(collection), id, value).Err(); err != nil {
		return fmt.Errorf("failed to store %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *RedisKV) Get(ctx context.Context, collection, id string) ([]byte, bool, error) {
	val, err := s.client.HGet(ctx, collectionKey(collection), id).Result()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to read %s/%s: %w", collection, id, err)
	}
	return []byte(val), true, nil
}

func (s *RedisKV) Delete(ctx context.Context, collection, id string) error {
	if err := s.client.HDel(ctx, collectionKey(collection), id).Err(); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *RedisKV) List(ctx context.Context, collection string) (map[string][]byte, error) {
	vals, err := s.client.HGetAll(ctx, collectionKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	out := make(map[string][]byte, len(vals))
	for id, v := range vals {
		out[id] = []byte(v)
	}
	return out, nil
}

var _ KV = (*RedisKV)(nil)
