package service

import (
	"context"
	"fmt"

	"nco-classifier-be/internal/repository/unitofwork"
	"nco-classifier-be/pkg/classifier/retriever"
	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/embedding"
)

// occupationCorpus answers similarity queries against the occupations table.
type occupationCorpus struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

var _ retriever.Corpus = &occupationCorpus{}

func NewOccupationCorpus(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) retriever.Corpus {
	return &occupationCorpus{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (c *occupationCorpus) Query(ctx context.Context, text string, n int) (*state.RetrievalResult, error) {
	vector, err := c.embeddingProvider.Generate(ctx, text, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := unitofwork.Current(ctx, c.uowFactory)
	scored, err := uow.OccupationRepository().SearchSimilar(ctx, vector, n)
	if err != nil {
		return nil, fmt.Errorf("search occupations: %w", err)
	}

	result := &state.RetrievalResult{
		Documents: make([]string, 0, len(scored)),
		Distances: make([]float64, 0, len(scored)),
		Metadatas: make([]state.OccupationMetadata, 0, len(scored)),
		IDs:       make([]string, 0, len(scored)),
	}
	for _, s := range scored {
		o := s.Occupation
		result.Append(o.Code, o.Document, s.Distance, state.OccupationMetadata{
			OccupationCode:  o.Code,
			FamilyName:      o.FamilyName,
			DivisionName:    o.DivisionName,
			OccupationTitle: o.Title,
		})
	}
	return result, nil
}
