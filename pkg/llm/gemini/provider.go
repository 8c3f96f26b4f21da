package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"nco-classifier-be/pkg/llm"

	"google.golang.org/genai"
)

type GeminiProvider struct {
	ModelName string
	client    *genai.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required for gemini provider")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiProvider{
		ModelName: modelName,
		client:    client,
	}, nil
}

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.7}, opts...)

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(options.Temperature)),
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}

	// System turns become the system instruction, the rest the conversation.
	var contents []*genai.Content
	for _, m := range history {
		switch m.Role {
		case "system":
			config.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
		case "assistant", "model":
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	if rf := options.ResponseFormat; rf != nil {
		config.ResponseMIMEType = "application/json"
		if len(rf.Schema) > 0 {
			var schema map[string]any
			if err := json.Unmarshal(rf.Schema, &schema); err != nil {
				return "", fmt.Errorf("invalid response schema: %w", err)
			}
			config.ResponseJsonSchema = schema
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	return result.Text(), nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
