package events

import "time"

const (
	TypeClassificationCompleted = "CLASSIFICATION_COMPLETED"
	TypeClarificationRequested  = "CLARIFICATION_REQUESTED"
	TypeThreadRetired           = "THREAD_RETIRED"
)

func NewClassificationCompleted(threadId string, codes, titles []string, confidence int) BaseEvent {
	return BaseEvent{
		Type: TypeClassificationCompleted,
		Data: map[string]interface{}{
			"thread_id":  threadId,
			"codes":      codes,
			"titles":     titles,
			"confidence": confidence,
		},
		OccurredAt: time.Now(),
	}
}

func NewClarificationRequested(threadId, question string) BaseEvent {
	return BaseEvent{
		Type: TypeClarificationRequested,
		Data: map[string]interface{}{
			"thread_id": threadId,
			"question":  question,
		},
		OccurredAt: time.Now(),
	}
}

func NewThreadRetired(threadId, reason string) BaseEvent {
	return BaseEvent{
		Type: TypeThreadRetired,
		Data: map[string]interface{}{
			"thread_id": threadId,
			"reason":    reason,
		},
		OccurredAt: time.Now(),
	}
}
