package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"nco-classifier-be/internal/dto"
	"nco-classifier-be/internal/pkg/apperror"
	"nco-classifier-be/internal/pkg/logger"
	"nco-classifier-be/internal/repository/unitofwork"
	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/classifier/workflow"
	"nco-classifier-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	outcome *workflow.Outcome
	err     error
	calls   []string
	onRun   func(ctx context.Context) error
}

func (s *stubRunner) run(ctx context.Context, call string) (*workflow.Outcome, error) {
	s.calls = append(s.calls, call)
	if s.onRun != nil {
		if err := s.onRun(ctx); err != nil {
			return nil, err
		}
	}
	return s.outcome, s.err
}

func (s *stubRunner) Start(ctx context.Context, threadID, userText string) (*workflow.Outcome, error) {
	return s.run(ctx, "start:"+threadID+":"+userText)
}

func (s *stubRunner) Resume(ctx context.Context, threadID, userText string) (*workflow.Outcome, error) {
	return s.run(ctx, "resume:"+threadID+":"+userText)
}

type chatFixture struct {
	db        *fakeDB
	runner    *stubRunner
	retirer   *recordingRetirer
	publisher *recordingPublisher
	svc       IChatService
}

func newChatFixture(runner *stubRunner) *chatFixture {
	return newChatFixtureWithTimeout(runner, 0)
}

func newChatFixtureWithTimeout(runner *stubRunner, timeout time.Duration) *chatFixture {
	f := &chatFixture{
		db:        newFakeDB(),
		runner:    runner,
		retirer:   &recordingRetirer{},
		publisher: &recordingPublisher{},
	}
	f.svc = NewChatService(fakeFactory{db: f.db}, runner, f.retirer, f.publisher, timeout, logger.NewNopLogger())
	return f
}

func TestStartChatMatchClosesThread(t *testing.T) {
	f := newChatFixture(&stubRunner{outcome: &workflow.Outcome{
		Status:     state.StatusMatchFound,
		Message:    "You are a Plumber (7126.0100).",
		Codes:      []string{"7126.0100"},
		Titles:     []string{"Plumber"},
		Confidence: 9,
	}})
	s := seedSession(f.db, true, time.Now().Add(-time.Minute))

	res, err := f.svc.StartChat(context.Background(), s.SessionId, &dto.ChatRequest{
		ThreadId:    s.ThreadId.String(),
		UserMessage: "I fix leaking pipes in houses",
	})
	require.NoError(t, err)

	assert.Equal(t, "MATCH_FOUND", res.Status)
	assert.Equal(t, []string{"7126.0100"}, res.Codes)
	assert.Equal(t, 9, res.Confidence)
	assert.Equal(t, []string{"start:" + s.ThreadId.String() + ":I fix leaking pipes in houses"}, f.runner.calls)

	stored := f.db.get(s.SessionId.String())
	assert.False(t, stored.IsActive)
	assert.NotNil(t, stored.ThreadClosedAt)
	assert.True(t, stored.ThreadLastUsedAt.After(s.ThreadLastUsedAt))

	assert.Equal(t, []retiredThread{{s.ThreadId.String(), RetireReasonMatchFound}}, f.retirer.retired)
	assert.Equal(t, []string{events.TypeClassificationCompleted}, f.publisher.types())
}

func TestResumeChatMoreInfoKeepsThreadOpen(t *testing.T) {
	f := newChatFixture(&stubRunner{outcome: &workflow.Outcome{
		Status:  state.StatusMoreInfo,
		Message: "What do you do on the construction site?",
	}})
	s := seedSession(f.db, true, time.Now().Add(-time.Minute))

	res, err := f.svc.ResumeChat(context.Background(), s.SessionId, &dto.ChatRequest{
		ThreadId:    s.ThreadId.String(),
		UserMessage: "I work on a construction site",
	})
	require.NoError(t, err)

	assert.Equal(t, "MORE_INFO", res.Status)
	assert.Equal(t, "What do you do on the construction site?", res.Result)
	assert.Empty(t, res.Codes)

	stored := f.db.get(s.SessionId.String())
	assert.True(t, stored.IsActive)
	assert.Nil(t, stored.ThreadClosedAt)
	assert.Empty(t, f.retirer.retired)
	assert.Equal(t, []string{events.TypeClarificationRequested}, f.publisher.types())
}

func TestChatSessionGuards(t *testing.T) {
	tests := []struct {
		name     string
		active   bool
		thread   func(own string) string
		session  func(own uuid.UUID) uuid.UUID
		wantCode apperror.ErrorCode
	}{
		{
			name:     "unknown session",
			active:   true,
			thread:   func(own string) string { return own },
			session:  func(uuid.UUID) uuid.UUID { return uuid.New() },
			wantCode: apperror.ErrSessionNotFound,
		},
		{
			name:     "stale thread",
			active:   true,
			thread:   func(string) string { return uuid.NewString() },
			session:  func(own uuid.UUID) uuid.UUID { return own },
			wantCode: apperror.ErrThreadMismatch,
		},
		{
			name:     "closed thread",
			active:   false,
			thread:   func(own string) string { return own },
			session:  func(own uuid.UUID) uuid.UUID { return own },
			wantCode: apperror.ErrThreadClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(&stubRunner{outcome: &workflow.Outcome{Status: state.StatusMoreInfo}})
			s := seedSession(f.db, tt.active, time.Now())

			_, err := f.svc.ResumeChat(context.Background(), tt.session(s.SessionId), &dto.ChatRequest{
				ThreadId:    tt.thread(s.ThreadId.String()),
				UserMessage: "hello",
			})
			assert.True(t, apperror.Is(err, tt.wantCode), "got %v", err)
			assert.Empty(t, f.runner.calls)
			assert.Zero(t, f.db.commits)
		})
	}
}

func TestChatMapsWorkflowErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode apperror.ErrorCode
	}{
		{name: "already started", err: workflow.ErrThreadAlreadyStarted, wantCode: apperror.ErrThreadInUse},
		{name: "not suspended", err: fmt.Errorf("%w: stage ANALYZE", workflow.ErrThreadNotSuspended), wantCode: apperror.ErrThreadInUse},
		{name: "nothing to resume", err: workflow.ErrThreadNotFound, wantCode: apperror.ErrThreadNotFound},
		{name: "closed", err: workflow.ErrThreadClosed, wantCode: apperror.ErrThreadClosed},
		{name: "generation", err: &state.GenerationError{Component: "analyzer", Err: errors.New("timeout")}, wantCode: apperror.ErrUpstreamUnavailable},
		{name: "retrieval", err: &state.RetrievalError{Query: "plumber", Err: errors.New("db down")}, wantCode: apperror.ErrUpstreamUnavailable},
		{name: "inconsistent", err: &state.InconsistentStateError{Reason: "query without flag"}, wantCode: apperror.ErrInternal},
		{name: "deadline", err: fmt.Errorf("load state: %w", context.DeadlineExceeded), wantCode: apperror.ErrUpstreamUnavailable},
		{name: "store failure", err: errors.New("load state: redis down"), wantCode: apperror.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(&stubRunner{err: tt.err})
			s := seedSession(f.db, true, time.Now().Add(-time.Minute))

			_, err := f.svc.StartChat(context.Background(), s.SessionId, &dto.ChatRequest{
				ThreadId:    s.ThreadId.String(),
				UserMessage: "hello",
			})
			assert.True(t, apperror.Is(err, tt.wantCode), "got %v", err)

			assert.Zero(t, f.db.commits)
			assert.Zero(t, f.db.updateCalls)
			assert.Empty(t, f.publisher.types())
			assert.Empty(t, f.retirer.retired)
		})
	}
}

func TestChatSurvivesEventBusFailure(t *testing.T) {
	f := newChatFixture(&stubRunner{outcome: &workflow.Outcome{Status: state.StatusMoreInfo, Message: "Which tools do you use?"}})
	f.publisher.err = errors.New("nats: no responders")
	s := seedSession(f.db, true, time.Now())

	res, err := f.svc.StartChat(context.Background(), s.SessionId, &dto.ChatRequest{
		ThreadId:    s.ThreadId.String(),
		UserMessage: "I work outdoors",
	})
	require.NoError(t, err)
	assert.Equal(t, "MORE_INFO", res.Status)
	assert.Equal(t, 1, f.db.commits)
}

// unusableFactory fails the test if anything opens a second unit of work.
type unusableFactory struct {
	t *testing.T
}

func (f unusableFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	f.t.Error("workflow opened a unit of work outside the locked transaction")
	return &fakeUoW{}
}

func TestChatWorkflowJoinsLockedTransaction(t *testing.T) {
	runner := &stubRunner{outcome: &workflow.Outcome{Status: state.StatusMoreInfo, Message: "Which tools do you use?"}}
	runner.onRun = func(ctx context.Context) error {
		uow, ok := unitofwork.Current(ctx, unusableFactory{t: t}).(*fakeUoW)
		require.True(t, ok)
		assert.True(t, uow.started, "workflow must run inside the open transaction")
		return nil
	}
	f := newChatFixture(runner)
	s := seedSession(f.db, true, time.Now())

	_, err := f.svc.StartChat(context.Background(), s.SessionId, &dto.ChatRequest{
		ThreadId:    s.ThreadId.String(),
		UserMessage: "I repair engines",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, f.db.commits)
}

func TestChatInvocationTimeout(t *testing.T) {
	runner := &stubRunner{}
	runner.onRun = func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		<-ctx.Done()
		return &state.GenerationError{Component: "analyzer", Err: ctx.Err()}
	}
	f := newChatFixtureWithTimeout(runner, 20*time.Millisecond)
	s := seedSession(f.db, true, time.Now())

	start := time.Now()
	_, err := f.svc.StartChat(context.Background(), s.SessionId, &dto.ChatRequest{
		ThreadId:    s.ThreadId.String(),
		UserMessage: "I repair engines",
	})

	assert.True(t, apperror.Is(err, apperror.ErrUpstreamUnavailable), "got %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Zero(t, f.db.commits)
}
