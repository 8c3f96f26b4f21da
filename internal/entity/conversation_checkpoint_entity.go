package entity

import "time"

type ConversationCheckpoint struct {
	ThreadId  string
	Stage     string
	State     []byte
	CreatedAt time.Time
	UpdatedAt *time.Time
}
