package service

import (
	"context"
	"encoding/json"

	"nco-classifier-be/internal/dto"
)

const (
	RetireReasonMatchFound = "match_found"
	RetireReasonNewChat    = "new_chat"
	RetireReasonIdle       = "idle"
)

// IThreadRetirer schedules the stored conversation of a closed thread for deletion.
type IThreadRetirer interface {
	Retire(ctx context.Context, threadId, reason string) error
}

type threadRetirer struct {
	publisherService IPublisherService
}

func NewThreadRetirer(publisherService IPublisherService) IThreadRetirer {
	return &threadRetirer{publisherService: publisherService}
}

func (r *threadRetirer) Retire(ctx context.Context, threadId, reason string) error {
	payload, err := json.Marshal(dto.ThreadRetiredMessage{
		ThreadId: threadId,
		Reason:   reason,
	})
	if err != nil {
		return err
	}
	return r.publisherService.Publish(ctx, payload)
}
