package implementation

import (
	"context"
	"errors"

	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/mapper"
	"nco-classifier-be/internal/model"
	"nco-classifier-be/internal/repository/contract"
	"nco-classifier-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type OccupationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OccupationMapper
}

func NewOccupationRepository(db *gorm.DB) contract.OccupationRepository {
	return &OccupationRepositoryImpl{
		db:     db,
		mapper: mapper.NewOccupationMapper(),
	}
}

func (r *OccupationRepositoryImpl) CreateBulk(ctx context.Context, occupations []*entity.Occupation) error {
	if len(occupations) == 0 {
		return nil
	}
	models := r.mapper.ToModels(occupations)
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

func (r *OccupationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Occupation, error) {
	var m model.Occupation
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OccupationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Occupation, error) {
	var models []*model.Occupation
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *OccupationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Occupation{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

func (r *OccupationRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredOccupation, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.Occupation
		Distance float64
	}
	var results []result

	// pgvector cosine distance: embedding_value <=> query
	err := r.db.WithContext(ctx).
		Table("occupations").
		Select("occupations.*, embedding_value <=> ? AS distance", pgvector.NewVector(embedding)).
		Order("distance ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredOccupation, len(results))
	for i := range results {
		scored[i] = &contract.ScoredOccupation{
			Occupation: r.mapper.ToEntity(&results[i].Occupation),
			Distance:   results[i].Distance,
		}
	}
	return scored, nil
}
