package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nco-classifier-be/pkg/llm"

	"github.com/ollama/ollama/api"
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	client    *api.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) (*OllamaProvider, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
	}

	httpClient := &http.Client{
		Timeout: 120 * time.Second,
	}

	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		client:    api.NewClient(u, httpClient),
	}, nil
}

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.7}, opts...)

	messages := make([]api.Message, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = api.Message{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}

	stream := false
	req := &api.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": options.Temperature,
		},
	}
	if options.MaxTokens > 0 {
		req.Options["num_predict"] = options.MaxTokens
	}

	// Ollama accepts a full JSON schema in the format field.
	if rf := options.ResponseFormat; rf != nil {
		if len(rf.Schema) > 0 {
			req.Format = rf.Schema
		} else {
			req.Format = []byte(`"json"`)
		}
	}

	var reply strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}

	return reply.String(), nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	// Reuse Chat for simplicity as most new LLMs are chat-optimized
	return o.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
