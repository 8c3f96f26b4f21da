// Package ingest loads the occupation reference set into the database.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"nco-classifier-be/internal/entity"
	"nco-classifier-be/internal/repository/unitofwork"
	"nco-classifier-be/pkg/embedding"
)

const DefaultBatchSize = 500

var requiredColumns = []string{"code", "family_name", "division_name", "title", "final_title"}

// ReadOccupations parses the reference CSV. The final_title column becomes the
// searchable document and code becomes the id.
func ReadOccupations(r io.Reader) ([]*entity.Occupation, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var out []*entity.Occupation
	seen := make(map[string]bool)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		code := strings.TrimSpace(record[index["code"]])
		if code == "" {
			return nil, fmt.Errorf("line %d: empty code", line)
		}
		if seen[code] {
			return nil, fmt.Errorf("line %d: duplicate code %s", line, code)
		}
		seen[code] = true

		out = append(out, &entity.Occupation{
			Code:         code,
			FamilyName:   strings.TrimSpace(record[index["family_name"]]),
			DivisionName: strings.TrimSpace(record[index["division_name"]]),
			Title:        strings.TrimSpace(record[index["title"]]),
			Document:     strings.TrimSpace(record[index["final_title"]]),
		})
	}
	return out, nil
}

// Progress is called after every stored batch.
type Progress func(done, total int)

type Loader struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	batchSize         int
}

func NewLoader(uowFactory unitofwork.RepositoryFactory, embeddingProvider embedding.EmbeddingProvider, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		batchSize:         batchSize,
	}
}

// Load embeds and stores occupations. It does nothing and returns skipped=true
// when the table already holds rows.
func (l *Loader) Load(ctx context.Context, occupations []*entity.Occupation, progress Progress) (skipped bool, err error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.OccupationRepository().Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count occupations: %w", err)
	}
	if existing > 0 {
		return true, nil
	}

	for start := 0; start < len(occupations); start += l.batchSize {
		end := min(start+l.batchSize, len(occupations))
		batch := occupations[start:end]

		docs := make([]string, len(batch))
		for i, o := range batch {
			docs[i] = o.Document
		}
		vectors, err := l.embeddingProvider.GenerateBatch(ctx, docs, embedding.TaskRetrievalDocument)
		if err != nil {
			return false, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		if len(vectors) != len(batch) {
			return false, fmt.Errorf("embed batch %d-%d: got %d vectors", start, end, len(vectors))
		}

		now := time.Now()
		for i, o := range batch {
			o.EmbeddingValue = vectors[i]
			o.CreatedAt = now
		}
		if err := uow.OccupationRepository().CreateBulk(ctx, batch); err != nil {
			return false, fmt.Errorf("store batch %d-%d: %w", start, end, err)
		}

		if progress != nil {
			progress(end, len(occupations))
		}
	}
	return false, nil
}
