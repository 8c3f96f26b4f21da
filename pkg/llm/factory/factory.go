package factory

import (
	"context"
	"fmt"

	"nco-classifier-be/pkg/llm"
	"nco-classifier-be/pkg/llm/gemini"
	"nco-classifier-be/pkg/llm/ollama"
	"nco-classifier-be/pkg/llm/openai"
)

// Config selects and configures a text-generation backend.
type Config struct {
	Provider string // "ollama", "openai", "groq", "gemini"
	Model    string
	BaseURL  string
	APIKey   string
}

func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		p, err := ollama.NewOllamaProvider(baseURL, cfg.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "openai", "groq":
		baseURL := cfg.BaseURL
		if baseURL == "" && cfg.Provider == "groq" {
			baseURL = openai.GroqBaseURL
		}
		p, err := openai.NewOpenAIProvider(cfg.APIKey, baseURL, cfg.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "gemini":
		p, err := gemini.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
