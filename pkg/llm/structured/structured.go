// Package structured turns free-form model replies into validated Go values.
package structured

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nco-classifier-be/pkg/llm"

	"github.com/google/jsonschema-go/jsonschema"
)

var (
	// ErrTransport wraps failures of the underlying provider call.
	ErrTransport = errors.New("llm call failed")
	// ErrInvalidOutput wraps replies that are not JSON or do not satisfy the schema.
	ErrInvalidOutput = errors.New("llm output invalid")
)

// Schema is a resolved JSON schema that can be sent to a provider and used
// to validate its reply.
type Schema struct {
	Name string
	// Strict asks OpenAI-compatible backends for strict schema adherence.
	Strict bool

	raw      json.RawMessage
	resolved *jsonschema.Resolved
}

func NewSchema(name string, s *jsonschema.Schema) (*Schema, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", name, err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema %s: %w", name, err)
	}
	return &Schema{Name: name, raw: raw, resolved: resolved}, nil
}

// MustSchema is NewSchema for package-level schemas known to be valid.
func MustSchema(name string, s *jsonschema.Schema) *Schema {
	schema, err := NewSchema(name, s)
	if err != nil {
		panic(err)
	}
	return schema
}

func (s *Schema) Raw() json.RawMessage {
	return s.raw
}

// Validate checks a JSON document against the schema.
func (s *Schema) Validate(payload []byte) error {
	var instance any
	if err := json.Unmarshal(payload, &instance); err != nil {
		return fmt.Errorf("%w: not valid JSON: %v", ErrInvalidOutput, err)
	}
	if err := s.resolved.Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return nil
}

// Generate sends history to the provider constrained by schema, validates the
// reply and decodes it into T.
func Generate[T any](ctx context.Context, provider llm.LLMProvider, schema *Schema, history []llm.Message, opts ...llm.Option) (*T, error) {
	opts = append(opts, llm.WithResponseFormat(schema.Name, schema.Raw(), schema.Strict))

	reply, err := provider.Chat(ctx, history, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	payload := ExtractJSON(reply)
	if err := schema.Validate(payload); err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return &out, nil
}

// ExtractJSON strips markdown fences and any prose around the outermost JSON object.
func ExtractJSON(reply string) []byte {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return []byte(s)
}
