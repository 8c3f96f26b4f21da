package embedding

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiProvider struct {
	Model  string
	client *genai.Client
}

var _ EmbeddingProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey string, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required for gemini embeddings")
	}
	if model == "" {
		model = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiProvider{Model: model, client: client}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	vectors, err := p.GenerateBatch(ctx, []string{text}, taskType)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *GeminiProvider) GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input to embed")
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	result, err := p.client.Models.EmbedContent(ctx, p.Model, contents, &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: genai.Ptr[int32](Dimensions),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embedding error: %w", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d inputs", len(result.Embeddings), len(texts))
	}

	out := make([][]float32, len(result.Embeddings))
	for i, e := range result.Embeddings {
		out[i] = normalizeVector(e.Values)
	}
	return out, nil
}
