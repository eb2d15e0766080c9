package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps create-request Idempotency-Key values to the id of
// the work entry they produced, so a replayed create returns the original
// entry. Keys expire after idempotencyTTL.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore wraps the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Get returns the work entry id recorded for key, or "" when the key has not
// been seen.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("idempotency get: %w", err)
	}
	return id, nil
}

// Put records that key produced the entry with the given id.
func (s *IdempotencyStore) Put(ctx context.Context, key, entryID string) error {
	return s.client.Set(ctx, s.key(key), entryID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:work_entry:" + key
}
