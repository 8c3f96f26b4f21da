package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"nco-classifier-be/internal/repository/checkpoint"
	"nco-classifier-be/pkg/classifier/state"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCheckpointStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	require.NoError(t, rdb.Ping(ctx).Err())

	store := checkpoint.NewRedisStore(rdb, time.Minute)
	threadID := uuid.NewString()

	s := state.New(threadID, "I teach children")
	s.Stage = state.StageDone
	require.NoError(t, store.Save(ctx, s))

	ttl, err := rdb.TTL(ctx, "nco:checkpoint:"+threadID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	got, err := store.Load(ctx, threadID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, state.StageDone, got.Stage)

	require.NoError(t, store.Delete(ctx, threadID))
	got, err = store.Load(ctx, threadID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
