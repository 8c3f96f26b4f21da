package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByThreadID struct {
	ThreadID string
}

func (s ByThreadID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("thread_id = ?", s.ThreadID)
}

// ActiveThread filters sessions whose current thread is still open.
type ActiveThread struct{}

func (s ActiveThread) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ThreadIdleSince filters active sessions whose thread has not been used since Before.
type ThreadIdleSince struct {
	Before time.Time
}

func (s ThreadIdleSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ? AND thread_last_used_at < ?", true, s.Before)
}
