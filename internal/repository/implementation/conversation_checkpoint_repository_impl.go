package implementation

import (
	"context"
	"errors"

	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/mapper"
	"nco-classifier-be/internal/model"
	"nco-classifier-be/internal/repository/contract"
	"nco-classifier-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationCheckpointRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CheckpointMapper
}

func NewConversationCheckpointRepository(db *gorm.DB) contract.ConversationCheckpointRepository {
	return &ConversationCheckpointRepositoryImpl{
		db:     db,
		mapper: mapper.NewCheckpointMapper(),
	}
}

func (r *ConversationCheckpointRepositoryImpl) Upsert(ctx context.Context, checkpoint *entity.ConversationCheckpoint) error {
	m := r.mapper.ToModel(checkpoint)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "thread_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stage", "state", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*checkpoint = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationCheckpointRepositoryImpl) DeleteByThreadId(ctx context.Context, threadId string) error {
	return r.db.WithContext(ctx).Where("thread_id = ?", threadId).Delete(&model.ConversationCheckpoint{}).Error
}

func (r *ConversationCheckpointRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationCheckpoint, error) {
	var m model.ConversationCheckpoint
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationCheckpointRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ConversationCheckpoint{}), specs...)
	err := query.Count(&count).Error
	return count, err
}
