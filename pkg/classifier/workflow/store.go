package workflow

import (
	"context"
	"errors"

	"nco-classifier-be/pkg/classifier/state"
)

var (
	ErrThreadAlreadyStarted = errors.New("thread already has a conversation")
	ErrThreadNotFound       = errors.New("no conversation stored for thread")
	ErrThreadClosed         = errors.New("thread already reached a final answer")
	ErrThreadNotSuspended   = errors.New("thread is not waiting for user input")
)

// StateStore persists conversation state by thread id. Load returns (nil, nil)
// for a thread that has never been saved or was deleted.
type StateStore interface {
	Load(ctx context.Context, threadID string) (*state.ConversationState, error)
	Save(ctx context.Context, s *state.ConversationState) error
	Delete(ctx context.Context, threadID string) error
}
