package embedding

import "context"

// Dimensions is the vector size stored in the occupations table.
const Dimensions = 768

const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// EmbeddingProvider defines the interface for generating text embeddings.
// Returned vectors are unit length so pgvector cosine distance is meaningful.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
	GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error)
}
