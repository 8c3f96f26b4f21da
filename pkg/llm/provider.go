package llm

import (
	"context"
	"encoding/json"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// ResponseFormat asks the backend to constrain its reply to a JSON schema.
// Backends without schema support fall back to plain JSON mode.
type ResponseFormat struct {
	Name   string
	Schema json.RawMessage
	Strict bool
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature    float64
	MaxTokens      int
	Model          string // Override default model
	ResponseFormat *ResponseFormat
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithResponseFormat(name string, schema json.RawMessage, strict bool) Option {
	return func(o *Options) {
		o.ResponseFormat = &ResponseFormat{Name: name, Schema: schema, Strict: strict}
	}
}

// Apply builds Options from defaults and the given overrides.
func Apply(defaults Options, opts ...Option) *Options {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}
	return &o
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
