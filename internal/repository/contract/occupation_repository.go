package contract

import (
	"context"

	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/repository/specification"
)

// ScoredOccupation wraps an Occupation with its cosine distance to the query.
type ScoredOccupation struct {
	Occupation *entity.Occupation
	Distance   float64 // 0.0 = identical direction
}

type OccupationRepository interface {
	CreateBulk(ctx context.Context, occupations []*entity.Occupation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Occupation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Occupation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar returns the nearest occupations by cosine distance, closest first.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*ScoredOccupation, error)
}
