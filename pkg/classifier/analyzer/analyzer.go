// Package analyzer arbitrates between candidate occupations and decides
// whether to answer, ask the user, or search again.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"nco-classifier-be/internal/pkg/logger"
	"nco-classifier-be/pkg/classifier/prompt"
	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/llm"
	"nco-classifier-be/pkg/llm/structured"
)

const (
	DefaultTemperature = 0.01
	MaxSelectedCodes   = 3

	minDirectiveWords = 8
	maxDirectiveWords = 18
)

var (
	errSemantic      = errors.New("analyzer output violates decision rules")
	directivePattern = regexp.MustCompile(`^Division: .+ \| Title: .+ \| Description: .+$`)
)

// Input is everything the arbitrator may look at. Assistant turns are excluded.
type Input struct {
	UserTurns   []string
	Expansion   *state.Expansion
	Retrieved   *state.RetrievalResult
	RetryBudget int
}

type output struct {
	ThoughtProcess  string           `json:"thought_process"`
	Status          state.Status     `json:"status"`
	SelectedCode    state.StringList `json:"selected_code"`
	SelectedTitle   state.StringList `json:"selected_title"`
	ConfidenceScore int              `json:"confidence_score"`
	SystemDirective string           `json:"system_directive"`
	UserMessage     string           `json:"user_message"`
}

type Config struct {
	Temperature  float64
	StrictSchema bool
}

type Analyzer struct {
	provider    llm.LLMProvider
	logger      logger.ILogger
	temperature float64
	strict      bool
}

func New(provider llm.LLMProvider, log logger.ILogger, cfg Config) *Analyzer {
	temp := cfg.Temperature
	if temp <= 0 {
		temp = DefaultTemperature
	}
	return &Analyzer{
		provider:    provider,
		logger:      log,
		temperature: temp,
		strict:      cfg.StrictSchema,
	}
}

// AllowedStatuses returns the outcomes the arbitrator may legally produce.
// An unanswerable expansion only permits MORE_INFO and an exhausted budget
// removes IMPROVED_SEARCH.
func AllowedStatuses(isQueryGenerated bool, retryBudget int) []state.Status {
	if !isQueryGenerated {
		return []state.Status{state.StatusMoreInfo}
	}
	if retryBudget <= 0 {
		return []state.Status{state.StatusMatchFound, state.StatusMoreInfo}
	}
	return []state.Status{state.StatusMatchFound, state.StatusMoreInfo, state.StatusImprovedSearch}
}

func (a *Analyzer) Analyze(ctx context.Context, in Input) (*state.Analysis, error) {
	queryGenerated := in.Expansion != nil && in.Expansion.IsQueryGenerated
	allowed := AllowedStatuses(queryGenerated, in.RetryBudget)

	schema, err := schemaFor(allowed)
	if err != nil {
		return nil, &state.GenerationError{Component: "analyzer", Err: err}
	}
	schema.Strict = a.strict

	retried := 0
	if in.RetryBudget <= 0 {
		retried = 1
	}

	history := []llm.Message{
		{Role: "system", Content: prompt.Analyzer(allowed)},
		{Role: "user", Content: prompt.AnalyzerCase(in.UserTurns, in.Expansion, in.Retrieved, retried)},
	}

	out, err := structured.Generate[output](ctx, a.provider, schema, history, llm.WithTemperature(a.temperature))
	if err != nil {
		return nil, &state.GenerationError{Component: "analyzer", Err: err}
	}

	analysis := &state.Analysis{
		ThoughtProcess:  out.ThoughtProcess,
		Status:          out.Status,
		SelectedCode:    state.Normalize([]string(out.SelectedCode)),
		SelectedTitle:   state.Normalize([]string(out.SelectedTitle)),
		ConfidenceScore: out.ConfidenceScore,
		SystemDirective: out.SystemDirective,
		UserMessage:     out.UserMessage,
	}

	if err := validate(analysis, allowed); err != nil {
		return nil, &state.GenerationError{Component: "analyzer", Err: err}
	}

	if lo, hi := confidenceBand(analysis.Status); analysis.ConfidenceScore < lo || analysis.ConfidenceScore > hi {
		a.logger.Warn("ANALYZER", "Confidence outside expected band", map[string]interface{}{
			"status":     analysis.Status,
			"confidence": analysis.ConfidenceScore,
			"band":       fmt.Sprintf("%d-%d", lo, hi),
		})
	}

	if analysis.Status == state.StatusImprovedSearch {
		if problems := directiveProblems(analysis.SystemDirective); len(problems) > 0 {
			a.logger.Warn("ANALYZER", "Re-search directive is off shape", map[string]interface{}{
				"directive": analysis.SystemDirective,
				"problems":  problems,
			})
		}
	}

	return analysis, nil
}

// directiveProblems lists how a corrected query departs from the
// "Division: | Title: | Description:" form and its word range.
// Separators do not count as words.
func directiveProblems(directive string) []string {
	var problems []string
	directive = strings.TrimSpace(directive)
	if !directivePattern.MatchString(directive) {
		problems = append(problems, "not in Division | Title | Description form")
	}

	words := 0
	for _, f := range strings.Fields(directive) {
		if f != "|" {
			words++
		}
	}
	if words < minDirectiveWords || words > maxDirectiveWords {
		problems = append(problems, fmt.Sprintf("%d words, want %d-%d", words, minDirectiveWords, maxDirectiveWords))
	}
	return problems
}

func validate(a *state.Analysis, allowed []state.Status) error {
	if !contains(allowed, a.Status) {
		return fmt.Errorf("%w: status %q not allowed here", errSemantic, a.Status)
	}
	if len(a.SelectedCode) != len(a.SelectedTitle) {
		return fmt.Errorf("%w: %d codes but %d titles", errSemantic, len(a.SelectedCode), len(a.SelectedTitle))
	}

	switch a.Status {
	case state.StatusMatchFound:
		if len(a.SelectedCode) == 0 || len(a.SelectedCode) > MaxSelectedCodes {
			return fmt.Errorf("%w: MATCH_FOUND needs 1-%d codes, got %d", errSemantic, MaxSelectedCodes, len(a.SelectedCode))
		}
		if a.UserMessage == "" {
			return fmt.Errorf("%w: MATCH_FOUND without a user message", errSemantic)
		}
	case state.StatusMoreInfo:
		if len(a.SelectedCode) > 0 {
			return fmt.Errorf("%w: MORE_INFO must not select codes", errSemantic)
		}
		if a.UserMessage == "" {
			return fmt.Errorf("%w: MORE_INFO without a question", errSemantic)
		}
	case state.StatusImprovedSearch:
		if len(a.SelectedCode) > 0 {
			return fmt.Errorf("%w: IMPROVED_SEARCH must not select codes", errSemantic)
		}
		if a.UserMessage != "" {
			return fmt.Errorf("%w: IMPROVED_SEARCH must not address the user", errSemantic)
		}
		if a.SystemDirective == "" {
			return fmt.Errorf("%w: IMPROVED_SEARCH without a corrected query", errSemantic)
		}
	}
	return nil
}

func confidenceBand(s state.Status) (int, int) {
	switch s {
	case state.StatusMatchFound:
		return 7, 10
	case state.StatusMoreInfo:
		return 0, 3
	default:
		return 3, 5
	}
}

func contains(list []state.Status, s state.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
