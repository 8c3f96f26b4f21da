package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	SessionId        uuid.UUID
	ThreadId         uuid.UUID
	IsActive         bool
	SessionCreatedAt time.Time
	ThreadCreatedAt  time.Time
	ThreadClosedAt   *time.Time
	ThreadLastUsedAt time.Time
}
