package mapper

import (
	"time"

	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/model"

	"gorm.io/datatypes"
)

type CheckpointMapper struct{}

func NewCheckpointMapper() *CheckpointMapper {
	return &CheckpointMapper{}
}

func (m *CheckpointMapper) ToEntity(c *model.ConversationCheckpoint) *entity.ConversationCheckpoint {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.ConversationCheckpoint{
		ThreadId:  c.ThreadId,
		Stage:     c.Stage,
		State:     []byte(c.State),
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *CheckpointMapper) ToModel(c *entity.ConversationCheckpoint) *model.ConversationCheckpoint {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.ConversationCheckpoint{
		ThreadId:  c.ThreadId,
		Stage:     c.Stage,
		State:     datatypes.JSON(c.State),
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}
