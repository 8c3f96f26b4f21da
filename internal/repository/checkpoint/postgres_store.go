package checkpoint

import (
	"context"

	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/repository/specification"
	"nco-classifier-be/internal/repository/unitofwork"
	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/classifier/workflow"
)

// PostgresStore keeps checkpoints in the conversation_checkpoints table.
type PostgresStore struct {
	uowFactory unitofwork.RepositoryFactory
}

var _ workflow.StateStore = &PostgresStore{}

func NewPostgresStore(uowFactory unitofwork.RepositoryFactory) *PostgresStore {
	return &PostgresStore{uowFactory: uowFactory}
}

func (s *PostgresStore) Load(ctx context.Context, threadID string) (*state.ConversationState, error) {
	uow := unitofwork.Current(ctx, s.uowFactory)
	cp, err := uow.ConversationCheckpointRepository().FindOne(ctx, specification.ByThreadID{ThreadID: threadID})
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, nil
	}
	return decode(threadID, cp.State)
}

func (s *PostgresStore) Save(ctx context.Context, cs *state.ConversationState) error {
	raw, err := encode(cs)
	if err != nil {
		return err
	}
	uow := unitofwork.Current(ctx, s.uowFactory)
	return uow.ConversationCheckpointRepository().Upsert(ctx, &entity.ConversationCheckpoint{
		ThreadId: cs.ThreadID,
		Stage:    string(cs.Stage),
		State:    raw,
	})
}

func (s *PostgresStore) Delete(ctx context.Context, threadID string) error {
	uow := unitofwork.Current(ctx, s.uowFactory)
	return uow.ConversationCheckpointRepository().DeleteByThreadId(ctx, threadID)
}
