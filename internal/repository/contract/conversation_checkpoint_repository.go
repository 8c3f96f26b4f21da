package contract

import (
	"context"

	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/repository/specification"
)

type ConversationCheckpointRepository interface {
	// Upsert inserts the checkpoint or replaces the stored one for the same thread.
	Upsert(ctx context.Context, checkpoint *entity.ConversationCheckpoint) error
	DeleteByThreadId(ctx context.Context, threadId string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationCheckpoint, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
