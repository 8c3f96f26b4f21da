package service

import (
	"context"
	"time"

	"nco-classifier-be/internal/pkg/logger"
)

// IdleThreadSweeper periodically closes threads nobody has touched for idleFor.
type IdleThreadSweeper struct {
	sessionService ISessionService
	idleFor        time.Duration
	interval       time.Duration
	logger         logger.ILogger
}

func NewIdleThreadSweeper(sessionService ISessionService, idleFor, interval time.Duration, log logger.ILogger) *IdleThreadSweeper {
	return &IdleThreadSweeper{
		sessionService: sessionService,
		idleFor:        idleFor,
		interval:       interval,
		logger:         log,
	}
}

// Run blocks until ctx is done.
func (s *IdleThreadSweeper) Run(ctx context.Context) {
	if s.idleFor <= 0 || s.interval <= 0 {
		s.logger.Info("SESSION", "Idle thread sweeper disabled", nil)
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *IdleThreadSweeper) sweep(ctx context.Context) {
	if _, err := s.sessionService.RetireIdleThreads(ctx, s.idleFor); err != nil {
		s.logger.Error("SESSION", "Idle thread sweep failed", map[string]interface{}{
			"cause": err.Error(),
		})
	}
}
