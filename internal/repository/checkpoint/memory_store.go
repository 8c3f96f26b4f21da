package checkpoint

import (
	"context"
	"time"

	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/classifier/workflow"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps checkpoints in process. Used for development and tests.
type MemoryStore struct {
	cache *cache.Cache
}

var _ workflow.StateStore = &MemoryStore{}

// NewMemoryStore expires entries after ttl; ttl <= 0 keeps them forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &MemoryStore{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (s *MemoryStore) Load(_ context.Context, threadID string) (*state.ConversationState, error) {
	x, found := s.cache.Get(threadID)
	if !found {
		return nil, nil
	}
	return decode(threadID, x.([]byte))
}

func (s *MemoryStore) Save(_ context.Context, cs *state.ConversationState) error {
	raw, err := encode(cs)
	if err != nil {
		return err
	}
	s.cache.Set(cs.ThreadID, raw, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, threadID string) error {
	s.cache.Delete(threadID)
	return nil
}
