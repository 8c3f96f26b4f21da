package unitofwork

import (
	"context"

	"nco-classifier-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	OccupationRepository() contract.OccupationRepository
	ConversationCheckpointRepository() contract.ConversationCheckpointRepository
}
