package llm

import (
	"context"
	"time"
)

// TraceLogger is the subset of the application logger used for LLM traces.
type TraceLogger interface {
	Debug(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

// TracingProvider records every prompt and reply of the wrapped provider.
type TracingProvider struct {
	next   LLMProvider
	logger TraceLogger
}

var _ LLMProvider = &TracingProvider{}

func NewTracingProvider(next LLMProvider, logger TraceLogger) *TracingProvider {
	return &TracingProvider{next: next, logger: logger}
}

func (t *TracingProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	o := Apply(Options{}, opts...)
	schema := ""
	if o.ResponseFormat != nil {
		schema = o.ResponseFormat.Name
	}

	started := time.Now()
	reply, err := t.next.Chat(ctx, history, opts...)
	details := map[string]interface{}{
		"schema":      schema,
		"temperature": o.Temperature,
		"messages":    history,
		"duration_ms": time.Since(started).Milliseconds(),
	}

	if err != nil {
		details["error"] = err.Error()
		t.logger.Error("LLM", "Chat failed", details)
		return "", err
	}

	details["reply"] = reply
	t.logger.Debug("LLM", "Chat completed", details)
	return reply, nil
}

func (t *TracingProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return t.Chat(ctx, []Message{{Role: "user", Content: prompt}}, opts...)
}
