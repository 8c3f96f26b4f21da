package service

import (
	"context"
	"testing"

	"nco-classifier-be/pkg/events"
	pktNats "nco-classifier-be/pkg/nats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSubscriber struct {
	handlers map[string]pktNats.EventHandler
}

func (s *capturingSubscriber) Subscribe(_ context.Context, subject, _ string, handler pktNats.EventHandler) error {
	s.handlers[subject] = handler
	return nil
}

type auditLine struct {
	module, message string
	details         map[string]interface{}
}

type auditLogger struct {
	lines []auditLine
}

func (l *auditLogger) Debug(string, string, map[string]interface{}) {}
func (l *auditLogger) Warn(string, string, map[string]interface{})  {}
func (l *auditLogger) Error(string, string, map[string]interface{}) {}
func (l *auditLogger) Sync() error                                  { return nil }

func (l *auditLogger) Info(module, message string, details map[string]interface{}) {
	l.lines = append(l.lines, auditLine{module, message, details})
}

func TestEventAuditServiceLogsEvents(t *testing.T) {
	sub := &capturingSubscriber{handlers: make(map[string]pktNats.EventHandler)}
	log := &auditLogger{}
	svc := NewEventAuditService(sub, log)

	require.NoError(t, svc.Start(context.Background()))
	assert.Len(t, sub.handlers, 3)

	handler := sub.handlers["events."+events.TypeClassificationCompleted]
	require.NotNil(t, handler)

	evt := events.NewClassificationCompleted("thread-9", []string{"2221.0100"}, []string{"Nurse"}, 8)
	require.NoError(t, handler(context.Background(), evt))

	require.Len(t, log.lines, 1)
	assert.Equal(t, "AUDIT", log.lines[0].module)
	assert.Equal(t, events.TypeClassificationCompleted, log.lines[0].message)
	assert.Equal(t, "thread-9", log.lines[0].details["thread_id"])
	assert.Contains(t, log.lines[0].details, "occurred_at")
}
