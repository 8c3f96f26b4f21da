package prompt

import (
	"fmt"
	"strings"

	"nco-classifier-be/pkg/classifier/state"
)

func divisionList() string {
	var sb strings.Builder
	for i, d := range Divisions {
		fmt.Fprintf(&sb, "   - %s -> Div %d\n", d, i+1)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Expander returns the expander system prompt.
func Expander() string {
	return fmt.Sprintf(ExpanderSystem, divisionList())
}

// Analyzer returns the analyzer system prompt restricted to the given statuses.
func Analyzer(allowed []state.Status) string {
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf(AnalyzerSystem, divisionList(), strings.Join(names, ", "))
}

// AnalyzerCase renders the per-call analyzer input.
func AnalyzerCase(userTurns []string, exp *state.Expansion, hits *state.RetrievalResult, retried int) string {
	if exp == nil {
		exp = &state.Expansion{}
	}

	quoted := make([]string, len(userTurns))
	for i, t := range userTurns {
		quoted[i] = fmt.Sprintf("%d. %s", i+1, t)
	}

	return fmt.Sprintf(analyzerCase,
		strings.Join(quoted, "\n"),
		exp.Reasoning,
		exp.DivisionReason,
		exp.TitleReason,
		exp.Query,
		exp.NoteForAnalyzer,
		exp.ClarificationQuestion,
		FormatHits(hits),
		retried,
	)
}

// FormatHits renders retrieval hits one per line. An empty set renders as "None".
func FormatHits(hits *state.RetrievalResult) string {
	if hits.Len() == 0 {
		return "None"
	}

	var sb strings.Builder
	for i := range hits.IDs {
		var meta state.OccupationMetadata
		if i < len(hits.Metadatas) {
			meta = hits.Metadatas[i]
		}
		var doc string
		if i < len(hits.Documents) {
			doc = hits.Documents[i]
		}
		var dist float64
		if i < len(hits.Distances) {
			dist = hits.Distances[i]
		}
		fmt.Fprintf(&sb, "[%d] code=%s | title=%s | family=%s | division=%s | distance=%.4f | %s\n",
			i+1, hits.IDs[i], meta.OccupationTitle, meta.FamilyName, meta.DivisionName, dist, doc)
	}
	return strings.TrimRight(sb.String(), "\n")
}
