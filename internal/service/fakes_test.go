package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/repository/contract"
	"nco-classifier-be/internal/repository/specification"
	"nco-classifier-be/internal/repository/unitofwork"
	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/events"

	"github.com/google/uuid"
)

// fakeDB is the shared backing data of every fake unit of work.
type fakeDB struct {
	mu          sync.Mutex
	sessions    map[string]entity.ChatSession
	scored      []*contract.ScoredOccupation
	searchErr   error
	lastLimit   int
	lastVector  []float32
	commits     int
	updateCalls int
}

func newFakeDB() *fakeDB {
	return &fakeDB{sessions: make(map[string]entity.ChatSession)}
}

func (db *fakeDB) put(s entity.ChatSession) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.sessions[s.SessionId.String()] = s
}

func (db *fakeDB) get(id string) entity.ChatSession {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.sessions[id]
}

type fakeFactory struct {
	db *fakeDB
}

func (f fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{db: f.db}
}

type fakeUoW struct {
	db      *fakeDB
	started bool
}

func (u *fakeUoW) Begin(context.Context) error {
	if u.started {
		return errors.New("transaction already started")
	}
	u.started = true
	return nil
}

func (u *fakeUoW) Commit() error {
	if !u.started {
		return errors.New("no transaction to commit")
	}
	u.started = false
	u.db.mu.Lock()
	u.db.commits++
	u.db.mu.Unlock()
	return nil
}

func (u *fakeUoW) Rollback() error {
	if !u.started {
		return errors.New("no transaction to rollback")
	}
	u.started = false
	return nil
}

func (u *fakeUoW) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{db: u.db}
}

func (u *fakeUoW) OccupationRepository() contract.OccupationRepository {
	return &fakeOccupationRepo{db: u.db}
}

func (u *fakeUoW) ConversationCheckpointRepository() contract.ConversationCheckpointRepository {
	return nil
}

type fakeSessionRepo struct {
	db *fakeDB
}

func matches(s entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.BySessionID:
			if s.SessionId != sp.SessionID {
				return false
			}
		case specification.ThreadIdleSince:
			if !s.IsActive || !s.ThreadLastUsedAt.Before(sp.Before) {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.ChatSession) error {
	r.db.put(*s)
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *entity.ChatSession) error {
	r.db.mu.Lock()
	r.db.updateCalls++
	r.db.mu.Unlock()
	r.db.put(*s)
	return nil
}

func (r *fakeSessionRepo) Delete(context.Context, uuid.UUID) error {
	return errors.New("not supported")
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []*entity.ChatSession
	for _, s := range r.db.sessions {
		if matches(s, specs) {
			cp := s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionId.String() < out[j].SessionId.String() })
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeOccupationRepo struct {
	db *fakeDB
}

func (r *fakeOccupationRepo) CreateBulk(context.Context, []*entity.Occupation) error { return nil }

func (r *fakeOccupationRepo) FindOne(context.Context, ...specification.Specification) (*entity.Occupation, error) {
	return nil, nil
}

func (r *fakeOccupationRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Occupation, error) {
	return nil, nil
}

func (r *fakeOccupationRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.db.scored)), nil
}

func (r *fakeOccupationRepo) SearchSimilar(_ context.Context, embedding []float32, limit int) ([]*contract.ScoredOccupation, error) {
	r.db.lastVector = embedding
	r.db.lastLimit = limit
	if r.db.searchErr != nil {
		return nil, r.db.searchErr
	}
	if limit < len(r.db.scored) {
		return r.db.scored[:limit], nil
	}
	return r.db.scored, nil
}

type retiredThread struct {
	threadId string
	reason   string
}

type recordingRetirer struct {
	mu      sync.Mutex
	retired []retiredThread
	err     error
}

func (r *recordingRetirer) Retire(_ context.Context, threadId, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retired = append(r.retired, retiredThread{threadId, reason})
	return r.err
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []events.Event
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.published))
	for _, e := range p.published {
		out = append(out, e.EventType())
	}
	return out
}

// fakeStore is a workflow.StateStore whose Delete can be made to fail.
type fakeStore struct {
	mu        sync.Mutex
	deleted   []string
	failTimes int
}

func (s *fakeStore) Load(context.Context, string) (*state.ConversationState, error) { return nil, nil }

func (s *fakeStore) Save(context.Context, *state.ConversationState) error { return nil }

func (s *fakeStore) Delete(_ context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failTimes > 0 {
		s.failTimes--
		return errors.New("redis: connection refused")
	}
	s.deleted = append(s.deleted, threadID)
	return nil
}

func (s *fakeStore) deletedThreads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}
