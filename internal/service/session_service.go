package service

import (
	"context"
	"time"

	"nco-classifier-be/internal/dto"
	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/pkg/apperror"
	"nco-classifier-be/internal/pkg/logger"
	"nco-classifier-be/internal/pkg/serverutils"
	"nco-classifier-be/internal/repository/specification"
	"nco-classifier-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const ValidSessionMessage = "VALID_SESSION"

type ISessionService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	ValidateSession(ctx context.Context, req *dto.ValidateSessionRequest) (*dto.ValidateSessionResponse, error)
	NewChat(ctx context.Context, sessionId uuid.UUID) (*dto.NewChatResponse, error)
	// RetireIdleThreads closes every active thread untouched for longer than idleFor.
	RetireIdleThreads(ctx context.Context, idleFor time.Duration) (int, error)
}

type SessionTokenConfig struct {
	Secret string
	TTL    time.Duration
}

type sessionService struct {
	uowFactory    unitofwork.RepositoryFactory
	threadRetirer IThreadRetirer
	tokenConfig   SessionTokenConfig
	logger        logger.ILogger
	now           func() time.Time
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	threadRetirer IThreadRetirer,
	tokenConfig SessionTokenConfig,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:    uowFactory,
		threadRetirer: threadRetirer,
		tokenConfig:   tokenConfig,
		logger:        log,
		now:           time.Now,
	}
}

func (s *sessionService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()
	session := entity.ChatSession{
		SessionId:        uuid.New(),
		ThreadId:         uuid.New(),
		IsActive:         true,
		SessionCreatedAt: now,
		ThreadCreatedAt:  now,
		ThreadLastUsedAt: now,
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, apperror.NewInternal(err)
	}

	token, err := serverutils.IssueSessionToken(s.tokenConfig.Secret, session.SessionId.String(), s.tokenConfig.TTL)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	s.logger.Info("SESSION", "Session created", map[string]interface{}{
		"session_id": session.SessionId.String(),
		"thread_id":  session.ThreadId.String(),
	})

	return &dto.CreateSessionResponse{
		SessionId: session.SessionId.String(),
		ThreadId:  session.ThreadId.String(),
		Token:     token,
	}, nil
}

func (s *sessionService) ValidateSession(ctx context.Context, req *dto.ValidateSessionRequest) (*dto.ValidateSessionResponse, error) {
	sessionId, err := uuid.Parse(req.SessionId)
	if err != nil {
		return nil, apperror.NewInvalidRequest("session_id must be a UUID")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if session == nil {
		return nil, apperror.NewSessionNotFound(req.SessionId)
	}
	if session.ThreadId.String() != req.ThreadId {
		return nil, apperror.NewThreadMismatch(req.ThreadId)
	}

	return &dto.ValidateSessionResponse{Message: ValidSessionMessage}, nil
}

func (s *sessionService) NewChat(ctx context.Context, sessionId uuid.UUID) (*dto.NewChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.NewInternal(err)
	}
	defer uow.Rollback()

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.ForUpdate{},
	)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if session == nil {
		return nil, apperror.NewSessionNotFound(sessionId.String())
	}

	oldThread := session.ThreadId.String()
	oldActive := session.IsActive

	now := s.now()
	session.ThreadId = uuid.New()
	session.IsActive = true
	session.ThreadCreatedAt = now
	session.ThreadLastUsedAt = now
	session.ThreadClosedAt = nil

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, apperror.NewInternal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.NewInternal(err)
	}

	if oldActive {
		s.retire(ctx, oldThread, RetireReasonNewChat)
	}

	s.logger.Info("SESSION", "Thread rotated", map[string]interface{}{
		"session_id": sessionId.String(),
		"old_thread": oldThread,
		"thread_id":  session.ThreadId.String(),
	})

	return &dto.NewChatResponse{ThreadId: session.ThreadId.String()}, nil
}

func (s *sessionService) RetireIdleThreads(ctx context.Context, idleFor time.Duration) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	now := s.now()
	idle, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ThreadIdleSince{Before: now.Add(-idleFor)},
		specification.ForUpdate{},
	)
	if err != nil {
		return 0, err
	}

	for _, session := range idle {
		session.IsActive = false
		session.ThreadClosedAt = &now
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			return 0, err
		}
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}

	for _, session := range idle {
		s.retire(ctx, session.ThreadId.String(), RetireReasonIdle)
	}
	if len(idle) > 0 {
		s.logger.Info("SESSION", "Idle threads retired", map[string]interface{}{"count": len(idle)})
	}
	return len(idle), nil
}

// retire is best effort: the session row is already closed, and a left over
// checkpoint can no longer be reached.
func (s *sessionService) retire(ctx context.Context, threadId, reason string) {
	if err := s.threadRetirer.Retire(ctx, threadId, reason); err != nil {
		s.logger.Warn("SESSION", "Failed to schedule thread cleanup", map[string]interface{}{
			"thread_id": threadId,
			"reason":    reason,
			"cause":     err.Error(),
		})
	}
}
