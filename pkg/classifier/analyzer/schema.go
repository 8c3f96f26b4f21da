package analyzer

import (
	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/llm/structured"

	"github.com/google/jsonschema-go/jsonschema"
)

func ptr[T any](v T) *T { return &v }

// schemaFor builds the output schema with status restricted to allowed.
func schemaFor(allowed []state.Status) (*structured.Schema, error) {
	enum := make([]any, len(allowed))
	for i, s := range allowed {
		enum[i] = string(s)
	}

	codeOrList := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{
			Types:       []string{"string", "array"},
			Items:       &jsonschema.Schema{Type: "string"},
			MaxItems:    ptr(MaxSelectedCodes),
			Description: desc,
		}
	}

	return structured.NewSchema("analyzer_output", &jsonschema.Schema{
		Type:        "object",
		Description: "Final decision on the NCO occupation code.",
		Properties: map[string]*jsonschema.Schema{
			"thought_process": {Type: "string", Description: "Phase 0-3 audit"},
			"status":          {Type: "string", Enum: enum, Description: "Outcome of the analysis"},
			"selected_code":   codeOrList("Selected NCO code, list of up to 3 codes, or empty string"),
			"selected_title":  codeOrList("Official title(s) matching selected_code, or empty string"),
			"confidence_score": {
				Type:        "integer",
				Minimum:     ptr(0.0),
				Maximum:     ptr(10.0),
				Description: "Confidence from 0 to 10",
			},
			"system_directive": {Type: "string", Description: "Corrected search query when re-searching, otherwise a technical summary"},
			"user_message":     {Type: "string", Description: "Message for the end user; empty when re-searching"},
		},
		Required: []string{
			"thought_process", "status", "selected_code", "selected_title",
			"confidence_score", "system_directive", "user_message",
		},
	})
}
