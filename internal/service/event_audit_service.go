package service

import (
	"context"

	"nco-classifier-be/internal/pkg/logger"
	"nco-classifier-be/pkg/events"
	pktNats "nco-classifier-be/pkg/nats"
)

type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

// IEventAuditService writes every classification event from the bus into an audit log.
type IEventAuditService interface {
	Start(ctx context.Context) error
}

type eventAuditService struct {
	subscriber EventSubscriber
	auditLog   logger.ILogger
}

func NewEventAuditService(subscriber EventSubscriber, auditLog logger.ILogger) IEventAuditService {
	return &eventAuditService{
		subscriber: subscriber,
		auditLog:   auditLog,
	}
}

func (s *eventAuditService) Start(ctx context.Context) error {
	subjects := map[string]string{
		events.TypeClassificationCompleted: "audit-classification-completed",
		events.TypeClarificationRequested:  "audit-clarification-requested",
		events.TypeThreadRetired:           "audit-thread-retired",
	}
	for eventType, durable := range subjects {
		if err := s.subscriber.Subscribe(ctx, pktNats.SubjectPrefix+eventType, durable, s.handle); err != nil {
			return err
		}
	}
	return nil
}

func (s *eventAuditService) handle(_ context.Context, event events.Event) error {
	details := make(map[string]interface{}, len(event.Payload())+1)
	for k, v := range event.Payload() {
		details[k] = v
	}
	details["occurred_at"] = event.Timestamp()
	s.auditLog.Info("AUDIT", event.EventType(), details)
	return nil
}
