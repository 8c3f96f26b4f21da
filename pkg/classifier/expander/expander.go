// Package expander turns the conversation into a structured NCO search query.
package expander

import (
	"context"
	"fmt"
	"strings"

	"nco-classifier-be/pkg/classifier/prompt"
	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/llm"
	"nco-classifier-be/pkg/llm/structured"

	"github.com/google/jsonschema-go/jsonschema"
)

// DefaultTemperature keeps the expander close to deterministic.
const DefaultTemperature = 0.01

var outputSchema = &jsonschema.Schema{
	Type:        "object",
	Description: "Structured analysis of the user's job description.",
	Properties: map[string]*jsonschema.Schema{
		"reasoning":              {Type: "string", Description: "Step-by-step analysis of user skills and tasks"},
		"division_reason":        {Type: "string", Description: "Why it fits specific division(s) or why it is ambiguous"},
		"title_reason":           {Type: "string", Description: "Why this title was chosen; empty when no query is generated"},
		"is_query_generated":     {Type: "boolean", Description: "True if a search query was formed"},
		"query":                  {Type: "string", Description: "Structured semantic search string; empty when the input is too vague"},
		"note_for_analyzer":      {Type: "string", Description: "Assumptions made to pick a division and other possible divisions"},
		"clarification_question": {Type: "string", Description: "Question for the user; empty when not needed"},
	},
	Required: []string{"reasoning", "division_reason", "is_query_generated", "note_for_analyzer"},
}

type Config struct {
	Temperature  float64
	StrictSchema bool
}

type Expander struct {
	provider    llm.LLMProvider
	schema      *structured.Schema
	temperature float64
}

func New(provider llm.LLMProvider, cfg Config) *Expander {
	schema := structured.MustSchema("expander_output", outputSchema)
	schema.Strict = cfg.StrictSchema

	temp := cfg.Temperature
	if temp <= 0 {
		temp = DefaultTemperature
	}

	return &Expander{
		provider:    provider,
		schema:      schema,
		temperature: temp,
	}
}

// Expand reads the full transcript and returns a fresh expansion.
func (e *Expander) Expand(ctx context.Context, messages []state.Message) (*state.Expansion, error) {
	if len(messages) == 0 {
		return nil, &state.GenerationError{Component: "expander", Err: fmt.Errorf("empty conversation")}
	}

	history := make([]llm.Message, 0, len(messages)+1)
	history = append(history, llm.Message{Role: "system", Content: prompt.Expander()})
	for _, m := range messages {
		history = append(history, llm.Message{Role: string(m.Role), Content: m.Content})
	}

	out, err := structured.Generate[state.Expansion](ctx, e.provider, e.schema, history, llm.WithTemperature(e.temperature))
	if err != nil {
		return nil, &state.GenerationError{Component: "expander", Err: err}
	}
	if !out.IsQueryGenerated && strings.TrimSpace(out.ClarificationQuestion) == "" {
		return nil, &state.GenerationError{Component: "expander", Err: fmt.Errorf("no query and no clarification question")}
	}
	return out, nil
}
