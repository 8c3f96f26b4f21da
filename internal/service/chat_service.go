package service

import (
	"context"
	"errors"
	"time"

	"nco-classifier-be/internal/dto"
	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/pkg/apperror"
	"nco-classifier-be/internal/pkg/logger"
	"nco-classifier-be/internal/repository/specification"
	"nco-classifier-be/internal/repository/unitofwork"
	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/classifier/workflow"
	"nco-classifier-be/pkg/events"

	"github.com/google/uuid"
)

// WorkflowRunner is the part of workflow.Controller the chat service drives.
type WorkflowRunner interface {
	Start(ctx context.Context, threadID, userText string) (*workflow.Outcome, error)
	Resume(ctx context.Context, threadID, userText string) (*workflow.Outcome, error)
}

type IChatService interface {
	StartChat(ctx context.Context, sessionId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ResumeChat(ctx context.Context, sessionId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	workflow       WorkflowRunner
	threadRetirer  IThreadRetirer
	eventPublisher EventPublisher
	timeout        time.Duration
	logger         logger.ILogger
	now            func() time.Time
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	workflow WorkflowRunner,
	threadRetirer IThreadRetirer,
	eventPublisher EventPublisher,
	timeout time.Duration,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		workflow:       workflow,
		threadRetirer:  threadRetirer,
		eventPublisher: eventPublisher,
		timeout:        timeout,
		logger:         log,
		now:            time.Now,
	}
}

func (c *chatService) StartChat(ctx context.Context, sessionId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	return c.invoke(ctx, sessionId, req, c.workflow.Start)
}

func (c *chatService) ResumeChat(ctx context.Context, sessionId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	return c.invoke(ctx, sessionId, req, c.workflow.Resume)
}

type runFunc func(ctx context.Context, threadID, userText string) (*workflow.Outcome, error)

// invoke holds the session row lock for the whole workflow run, so two
// requests on the same thread never interleave. The workflow runs on the
// locked transaction: checkpoint and corpus reads join it and the saved
// state commits together with the session row.
func (c *chatService) invoke(ctx context.Context, sessionId uuid.UUID, req *dto.ChatRequest, run runFunc) (*dto.ChatResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, c.mapStorageError(err)
	}
	defer uow.Rollback()

	session, err := c.lockActiveThread(ctx, uow, sessionId, req.ThreadId)
	if err != nil {
		return nil, err
	}

	outcome, err := run(unitofwork.WithUnitOfWork(ctx, uow), req.ThreadId, req.UserMessage)
	if err != nil {
		return nil, c.mapWorkflowError(req.ThreadId, err)
	}

	now := c.now()
	session.ThreadLastUsedAt = now
	if outcome.Status == state.StatusMatchFound {
		session.IsActive = false
		session.ThreadClosedAt = &now
	}
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, apperror.NewInternal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.NewInternal(err)
	}

	c.afterCommit(ctx, req.ThreadId, outcome)

	return &dto.ChatResponse{
		Status:     string(outcome.Status),
		Result:     outcome.Message,
		Codes:      outcome.Codes,
		Titles:     outcome.Titles,
		Confidence: outcome.Confidence,
	}, nil
}

func (c *chatService) mapStorageError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewUpstreamUnavailable(err)
	}
	return apperror.NewInternal(err)
}

func (c *chatService) lockActiveThread(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, threadId string) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.ForUpdate{},
	)
	if err != nil {
		return nil, c.mapStorageError(err)
	}
	if session == nil {
		return nil, apperror.NewSessionNotFound(sessionId.String())
	}
	if session.ThreadId.String() != threadId {
		return nil, apperror.NewThreadMismatch(threadId)
	}
	if !session.IsActive {
		return nil, apperror.NewThreadClosed(threadId)
	}
	return session, nil
}

func (c *chatService) afterCommit(ctx context.Context, threadId string, outcome *workflow.Outcome) {
	var evt events.BaseEvent
	switch outcome.Status {
	case state.StatusMatchFound:
		if err := c.threadRetirer.Retire(ctx, threadId, RetireReasonMatchFound); err != nil {
			c.logger.Warn("CHAT", "Failed to schedule thread cleanup", map[string]interface{}{
				"thread_id": threadId,
				"cause":     err.Error(),
			})
		}
		evt = events.NewClassificationCompleted(threadId, outcome.Codes, outcome.Titles, outcome.Confidence)
	default:
		evt = events.NewClarificationRequested(threadId, outcome.Message)
	}

	c.logger.Info("CHAT", "Turn completed", map[string]interface{}{
		"thread_id": threadId,
		"status":    string(outcome.Status),
		"codes":     outcome.Codes,
	})

	if c.eventPublisher == nil {
		return
	}
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		c.logger.Warn("EVENTS", "Failed to publish "+evt.Type+" event", map[string]interface{}{
			"thread_id": threadId,
			"cause":     err.Error(),
		})
	}
}

func (c *chatService) mapWorkflowError(threadId string, err error) error {
	var (
		genErr       *state.GenerationError
		retrievalErr *state.RetrievalError
		stateErr     *state.InconsistentStateError
	)

	switch {
	case errors.Is(err, workflow.ErrThreadAlreadyStarted):
		return apperror.NewThreadInUse(threadId, "thread already has a conversation, resume it instead")
	case errors.Is(err, workflow.ErrThreadNotSuspended):
		return apperror.NewThreadInUse(threadId, "thread is not waiting for an answer")
	case errors.Is(err, workflow.ErrThreadNotFound):
		return apperror.NewThreadNotFound(threadId)
	case errors.Is(err, workflow.ErrThreadClosed):
		return apperror.NewThreadClosed(threadId)
	case errors.As(err, &genErr), errors.As(err, &retrievalErr), errors.Is(err, context.DeadlineExceeded):
		c.logger.Error("CHAT", "Classification capability failed", map[string]interface{}{
			"thread_id": threadId,
			"cause":     err.Error(),
		})
		return apperror.NewUpstreamUnavailable(err)
	case errors.As(err, &stateErr):
		c.logger.Error("CHAT", "Inconsistent conversation state", map[string]interface{}{
			"thread_id": threadId,
			"cause":     err.Error(),
		})
		return apperror.NewInternal(err)
	default:
		return apperror.NewInternal(err)
	}
}
