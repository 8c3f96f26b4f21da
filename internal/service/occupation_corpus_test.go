package service

import (
	"context"
	"errors"
	"testing"

	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/repository/contract"
	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedEmbedder struct {
	gotText string
	gotTask string
	err     error
}

func (e *fixedEmbedder) Generate(_ context.Context, text, taskType string) ([]float32, error) {
	e.gotText, e.gotTask = text, taskType
	return []float32{1, 0, 0}, e.err
}

func (e *fixedEmbedder) GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.Generate(ctx, text, taskType)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func TestOccupationCorpusQuery(t *testing.T) {
	db := newFakeDB()
	db.scored = []*contract.ScoredOccupation{
		{Occupation: &entity.Occupation{Code: "7126.0100", FamilyName: "Plumbers and Pipe Fitters", DivisionName: "Craft and Related Trades Workers", Title: "Plumber", Document: "Plumber; installs and repairs pipes"}, Distance: 0.12},
		{Occupation: &entity.Occupation{Code: "7126.0200", FamilyName: "Plumbers and Pipe Fitters", DivisionName: "Craft and Related Trades Workers", Title: "Pipe Fitter", Document: "Pipe Fitter; lays pipes"}, Distance: 0.2},
		{Occupation: &entity.Occupation{Code: "7127.0100", Title: "Air Conditioning Mechanic"}, Distance: 0.4},
	}
	embedder := &fixedEmbedder{}
	corpus := NewOccupationCorpus(fakeFactory{db: db}, embedder)

	got, err := corpus.Query(context.Background(), "repairs water pipes in residential buildings", 2)
	require.NoError(t, err)

	assert.Equal(t, "repairs water pipes in residential buildings", embedder.gotText)
	assert.Equal(t, embedding.TaskRetrievalQuery, embedder.gotTask)
	assert.Equal(t, 2, db.lastLimit)

	assert.Equal(t, []string{"7126.0100", "7126.0200"}, got.IDs)
	assert.Equal(t, []float64{0.12, 0.2}, got.Distances)
	assert.Equal(t, "Plumber; installs and repairs pipes", got.Documents[0])
	assert.Equal(t, state.OccupationMetadata{
		OccupationCode:  "7126.0200",
		FamilyName:      "Plumbers and Pipe Fitters",
		DivisionName:    "Craft and Related Trades Workers",
		OccupationTitle: "Pipe Fitter",
	}, got.Metadatas[1])
}

func TestOccupationCorpusFailures(t *testing.T) {
	tests := []struct {
		name     string
		embedErr error
		dbErr    error
	}{
		{name: "embedding down", embedErr: errors.New("ollama unreachable")},
		{name: "search fails", dbErr: errors.New("relation occupations does not exist")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newFakeDB()
			db.searchErr = tt.dbErr
			corpus := NewOccupationCorpus(fakeFactory{db: db}, &fixedEmbedder{err: tt.embedErr})

			got, err := corpus.Query(context.Background(), "nurse", 5)
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}
