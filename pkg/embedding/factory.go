package embedding

import (
	"context"
	"fmt"
	"strings"
)

type Config struct {
	Provider      string // ollama | gemini
	OllamaBaseURL string
	OllamaModel   string
	GeminiAPIKey  string
	GeminiModel   string
}

func NewEmbeddingProvider(ctx context.Context, cfg Config) (EmbeddingProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "ollama":
		p, err := NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "gemini":
		p, err := NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
