package embedding

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaProvider implements EmbeddingProvider for local Ollama models (e.g., nomic-embed-text)
type OllamaProvider struct {
	BaseURL string
	Model   string
	client  *api.Client
}

var _ EmbeddingProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL string, model string) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
	}

	return &OllamaProvider{
		BaseURL: baseURL,
		Model:   model,
		client:  api.NewClient(u, &http.Client{Timeout: 60 * time.Second}),
	}, nil
}

// Generate ignores taskType; nomic models are trained without it.
func (p *OllamaProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	vectors, err := p.GenerateBatch(ctx, []string{text}, taskType)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *OllamaProvider) GenerateBatch(ctx context.Context, texts []string, _ string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input to embed")
	}

	resp, err := p.client.Embed(ctx, &api.EmbedRequest{
		Model: p.Model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embedding error: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}

	out := make([][]float32, len(resp.Embeddings))
	for i, v := range resp.Embeddings {
		out[i] = normalizeVector(v)
	}
	return out, nil
}

// normalizeVector normalizes a vector to unit length (magnitude = 1).
// Cosine distance in pgvector requires normalized vectors.
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	// Avoid division by zero
	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
