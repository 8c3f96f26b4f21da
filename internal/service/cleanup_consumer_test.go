package service

import (
	"context"
	"testing"
	"time"

	"nco-classifier-be/internal/pkg/logger"
	"nco-classifier-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "thread-cleanup-test"

func startCleanup(t *testing.T, store *fakeStore, publisher *recordingPublisher) (IThreadRetirer, IPublisherService) {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	consumer := NewCleanupConsumer(pubSub, testTopic, store, publisher, logger.NewNopLogger()).(*cleanupConsumer)
	consumer.retryDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, consumer.Consume(ctx))

	raw := NewPublisherService(pubSub, testTopic)
	return NewThreadRetirer(raw), raw
}

func TestCleanupConsumerDeletesRetiredThread(t *testing.T) {
	store := &fakeStore{}
	publisher := &recordingPublisher{}
	retirer, _ := startCleanup(t, store, publisher)

	require.NoError(t, retirer.Retire(context.Background(), "thread-1", RetireReasonMatchFound))

	assert.Eventually(t, func() bool {
		return len(store.deletedThreads()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"thread-1"}, store.deletedThreads())
	assert.Eventually(t, func() bool {
		return len(publisher.types()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{events.TypeThreadRetired}, publisher.types())
}

func TestCleanupConsumerSkipsBadPayloads(t *testing.T) {
	store := &fakeStore{}
	retirer, raw := startCleanup(t, store, &recordingPublisher{})

	require.NoError(t, raw.Publish(context.Background(), []byte("not json")))
	require.NoError(t, raw.Publish(context.Background(), []byte(`{"reason":"idle"}`)))
	require.NoError(t, retirer.Retire(context.Background(), "thread-2", RetireReasonIdle))

	assert.Eventually(t, func() bool {
		return len(store.deletedThreads()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"thread-2"}, store.deletedThreads())
}

func TestCleanupConsumerRetriesStoreFailures(t *testing.T) {
	tests := []struct {
		name        string
		failTimes   int
		wantDeleted []string
	}{
		{name: "recovers", failTimes: 2, wantDeleted: []string{"thread-3"}},
		{name: "gives up", failTimes: cleanupMaxAttempts, wantDeleted: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{failTimes: tt.failTimes}
			retirer, _ := startCleanup(t, store, &recordingPublisher{})

			require.NoError(t, retirer.Retire(context.Background(), "thread-3", RetireReasonNewChat))

			assert.Eventually(t, func() bool {
				store.mu.Lock()
				defer store.mu.Unlock()
				return store.failTimes == 0
			}, time.Second, 5*time.Millisecond)
			time.Sleep(20 * time.Millisecond)
			assert.Equal(t, tt.wantDeleted, store.deletedThreads())
		})
	}
}
