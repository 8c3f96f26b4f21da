package mapper

import (
	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type OccupationMapper struct{}

func NewOccupationMapper() *OccupationMapper {
	return &OccupationMapper{}
}

func (m *OccupationMapper) ToEntity(o *model.Occupation) *entity.Occupation {
	if o == nil {
		return nil
	}

	return &entity.Occupation{
		Code:           o.Code,
		FamilyName:     o.FamilyName,
		DivisionName:   o.DivisionName,
		Title:          o.Title,
		Document:       o.Document,
		EmbeddingValue: o.EmbeddingValue.Slice(),
		CreatedAt:      o.CreatedAt,
	}
}

func (m *OccupationMapper) ToModel(o *entity.Occupation) *model.Occupation {
	if o == nil {
		return nil
	}

	return &model.Occupation{
		Code:           o.Code,
		FamilyName:     o.FamilyName,
		DivisionName:   o.DivisionName,
		Title:          o.Title,
		Document:       o.Document,
		EmbeddingValue: pgvector.NewVector(o.EmbeddingValue),
		CreatedAt:      o.CreatedAt,
	}
}

func (m *OccupationMapper) ToEntities(occupations []*model.Occupation) []*entity.Occupation {
	entities := make([]*entity.Occupation, len(occupations))
	for i, o := range occupations {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

func (m *OccupationMapper) ToModels(occupations []*entity.Occupation) []*model.Occupation {
	models := make([]*model.Occupation, len(occupations))
	for i, o := range occupations {
		models[i] = m.ToModel(o)
	}
	return models
}
