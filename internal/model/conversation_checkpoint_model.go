package model

import (
	"time"

	"gorm.io/datatypes"
)

// ConversationCheckpoint is the persisted workflow state of one thread.
type ConversationCheckpoint struct {
	ThreadId  string         `gorm:"type:text;primaryKey"`
	Stage     string         `gorm:"type:varchar(20);not null;index"`
	State     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (ConversationCheckpoint) TableName() string {
	return "conversation_checkpoints"
}
