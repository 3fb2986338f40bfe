package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"citizengate/pkg/platform/sentinel"
)

const redisKeyPrefix = "citizengate:profile:"

// RedisStore persists each profile as one JSON document. Merges are
// read-modify-write with last-writer-wins, matching the flat-file store this
// replaces; the single-key layout keeps a profile's fields atomic per write.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (Profile, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", userID, err)
	}
	return p, nil
}

func (s *RedisStore) Upsert(ctx context.Context, userID string, updates Profile) (Profile, error) {
	merged, err := s.Get(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		merged = make(Profile, len(updates)+1)
	} else if err != nil {
		return nil, err
	}
	for k, v := range updates {
		merged[k] = v
	}
	merged[FieldUserID] = userID

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode profile %s: %w", userID, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+userID, raw, 0).Err(); err != nil {
		return nil, fmt.Errorf("redis set profile: %w", err)
	}
	return merged, nil
}
