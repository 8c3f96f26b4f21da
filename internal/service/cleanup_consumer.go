package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"nco-classifier-be/internal/dto"
	"nco-classifier-be/internal/pkg/logger"
	"nco-classifier-be/pkg/classifier/workflow"
	"nco-classifier-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	cleanupMaxAttempts = 5
	cleanupRetryDelay  = 2 * time.Second
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// cleanupConsumer deletes the stored state of retired threads.
type cleanupConsumer struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	store          workflow.StateStore
	eventPublisher EventPublisher
	logger         logger.ILogger

	retryDelay time.Duration
	mu         sync.Mutex
	attempts   map[string]int
}

func NewCleanupConsumer(
	pubSub *gochannel.GoChannel,
	topicName string,
	store workflow.StateStore,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IConsumerService {
	return &cleanupConsumer{
		pubSub:         pubSub,
		topicName:      topicName,
		store:          store,
		eventPublisher: eventPublisher,
		logger:         log,
		retryDelay:     cleanupRetryDelay,
		attempts:       make(map[string]int),
	}
}

func (cs *cleanupConsumer) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *cleanupConsumer) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ThreadRetiredMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.ThreadId == "" {
		cs.logger.Error("CLEANUP", "Dropping undecodable cleanup message", map[string]interface{}{
			"message_id": msg.UUID,
		})
		msg.Ack()
		return
	}

	if err := cs.store.Delete(ctx, payload.ThreadId); err != nil {
		if cs.recordFailure(msg.UUID) >= cleanupMaxAttempts {
			cs.logger.Error("CLEANUP", "Giving up on thread state cleanup", map[string]interface{}{
				"thread_id": payload.ThreadId,
				"cause":     err.Error(),
			})
			cs.forget(msg.UUID)
			msg.Ack()
			return
		}
		cs.logger.Warn("CLEANUP", "Failed to delete thread state, retrying", map[string]interface{}{
			"thread_id": payload.ThreadId,
			"cause":     err.Error(),
		})
		time.Sleep(cs.retryDelay)
		msg.Nack()
		return
	}
	cs.forget(msg.UUID)

	cs.logger.Info("CLEANUP", "Thread state deleted", map[string]interface{}{
		"thread_id": payload.ThreadId,
		"reason":    payload.Reason,
	})

	if cs.eventPublisher != nil {
		if err := cs.eventPublisher.Publish(ctx, events.NewThreadRetired(payload.ThreadId, payload.Reason)); err != nil {
			cs.logger.Warn("EVENTS", "Failed to publish THREAD_RETIRED event", map[string]interface{}{
				"thread_id": payload.ThreadId,
				"cause":     err.Error(),
			})
		}
	}
	msg.Ack()
}

func (cs *cleanupConsumer) recordFailure(id string) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.attempts[id]++
	return cs.attempts[id]
}

func (cs *cleanupConsumer) forget(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.attempts, id)
}
