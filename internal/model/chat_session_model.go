package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession owns at most one live thread at a time. The row is locked for
// the duration of every workflow invocation on its thread.
type ChatSession struct {
	SessionId        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ThreadId         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	IsActive         bool       `gorm:"not null;default:false"`
	SessionCreatedAt time.Time  `gorm:"autoCreateTime"`
	ThreadCreatedAt  time.Time  `gorm:"not null"`
	ThreadClosedAt   *time.Time `gorm:"index"`
	ThreadLastUsedAt time.Time  `gorm:"not null"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
