package unitofwork

import (
	"context"
	"testing"

	"nco-classifier-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
)

type stubUoW struct {
	name string
}

func (s *stubUoW) Begin(context.Context) error { return nil }
func (s *stubUoW) Commit() error               { return nil }
func (s *stubUoW) Rollback() error             { return nil }

func (s *stubUoW) ChatSessionRepository() contract.ChatSessionRepository { return nil }
func (s *stubUoW) OccupationRepository() contract.OccupationRepository   { return nil }
func (s *stubUoW) ConversationCheckpointRepository() contract.ConversationCheckpointRepository {
	return nil
}

type countingFactory struct {
	created int
}

func (f *countingFactory) NewUnitOfWork(context.Context) UnitOfWork {
	f.created++
	return &stubUoW{name: "fresh"}
}

func TestCurrent(t *testing.T) {
	bound := &stubUoW{name: "bound"}

	tests := []struct {
		name        string
		ctx         context.Context
		want        string
		wantCreated int
	}{
		{name: "joins bound unit of work", ctx: WithUnitOfWork(context.Background(), bound), want: "bound", wantCreated: 0},
		{name: "falls back to factory", ctx: context.Background(), want: "fresh", wantCreated: 1},
		{name: "nil binding falls back", ctx: WithUnitOfWork(context.Background(), nil), want: "fresh", wantCreated: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &countingFactory{}
			got := Current(tt.ctx, f)

			assert.Equal(t, tt.want, got.(*stubUoW).name)
			assert.Equal(t, tt.wantCreated, f.created)
		})
	}
}
