package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 5, cfg.Ai.RetrievalTopK)
	assert.InDelta(t, 0.01, cfg.Ai.LLMTemperature, 1e-9)
	assert.False(t, cfg.Ai.LLMStrictSchema)
	assert.Equal(t, "postgres", cfg.Store.Backend)
	assert.Equal(t, 120, cfg.App.ChatTimeoutSeconds)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Groq")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("LLM_STRICT_SCHEMA", "true")
	t.Setenv("RETRIEVAL_TOP_K", "8")
	t.Setenv("LLM_TEMPERATURE", "not-a-number")
	t.Setenv("STATE_STORE", "REDIS")

	cfg := Load()

	assert.Equal(t, "groq", cfg.Ai.LLMProvider)
	assert.Equal(t, "gsk-test", cfg.LLMAPIKey())
	assert.True(t, cfg.Ai.LLMStrictSchema)
	assert.Equal(t, 8, cfg.Ai.RetrievalTopK)
	assert.InDelta(t, 0.01, cfg.Ai.LLMTemperature, 1e-9)
	assert.Equal(t, "redis", cfg.Store.Backend)
}
