package mapper

import (
	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		SessionId:        s.SessionId,
		ThreadId:         s.ThreadId,
		IsActive:         s.IsActive,
		SessionCreatedAt: s.SessionCreatedAt,
		ThreadCreatedAt:  s.ThreadCreatedAt,
		ThreadClosedAt:   s.ThreadClosedAt,
		ThreadLastUsedAt: s.ThreadLastUsedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		SessionId:        s.SessionId,
		ThreadId:         s.ThreadId,
		IsActive:         s.IsActive,
		SessionCreatedAt: s.SessionCreatedAt,
		ThreadCreatedAt:  s.ThreadCreatedAt,
		ThreadClosedAt:   s.ThreadClosedAt,
		ThreadLastUsedAt: s.ThreadLastUsedAt,
	}
}
