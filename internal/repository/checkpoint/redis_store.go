package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/classifier/workflow"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "nco:checkpoint:"

type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ workflow.StateStore = &RedisStore{}

// NewRedisStore expires checkpoints after ttl; ttl <= 0 keeps them until deleted.
func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(threadID string) string {
	return redisKeyPrefix + threadID
}

func (s *RedisStore) Load(ctx context.Context, threadID string) (*state.ConversationState, error) {
	raw, err := s.rdb.Get(ctx, redisKey(threadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decode(threadID, raw)
}

func (s *RedisStore) Save(ctx context.Context, cs *state.ConversationState) error {
	raw, err := encode(cs)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, redisKey(cs.ThreadID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, threadID string) error {
	if err := s.rdb.Del(ctx, redisKey(threadID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
