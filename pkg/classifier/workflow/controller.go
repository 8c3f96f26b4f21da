// Package workflow sequences expansion, retrieval and analysis for one
// conversation thread and suspends when the user has to answer a question.
package workflow

import (
	"context"
	"fmt"
	"time"

	"nco-classifier-be/internal/pkg/logger"
	"nco-classifier-be/pkg/classifier/analyzer"
	"nco-classifier-be/pkg/classifier/state"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("nco-classifier-be/workflow")

type Expander interface {
	Expand(ctx context.Context, messages []state.Message) (*state.Expansion, error)
}

type Retriever interface {
	Retrieve(ctx context.Context, s *state.ConversationState) (*state.RetrievalResult, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, in analyzer.Input) (*state.Analysis, error)
}

// Outcome is what an invocation hands back to the caller. Status is either
// MORE_INFO (Message holds the question) or MATCH_FOUND.
type Outcome struct {
	Status     state.Status `json:"status"`
	Message    string       `json:"message"`
	Codes      []string     `json:"codes"`
	Titles     []string     `json:"titles"`
	Confidence int          `json:"confidence"`
}

type Controller struct {
	expander  Expander
	retriever Retriever
	analyzer  Analyzer
	store     StateStore
	logger    logger.ILogger
	now       func() time.Time
}

func NewController(e Expander, r Retriever, a Analyzer, store StateStore, log logger.ILogger) *Controller {
	return &Controller{
		expander:  e,
		retriever: r,
		analyzer:  a,
		store:     store,
		logger:    log,
		now:       time.Now,
	}
}

// Start runs a brand new thread from its first user message.
func (c *Controller) Start(ctx context.Context, threadID, userText string) (*Outcome, error) {
	existing, err := c.store.Load(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if existing != nil {
		return nil, ErrThreadAlreadyStarted
	}

	c.logger.Info("WORKFLOW", "Starting thread", map[string]interface{}{"thread_id": threadID})
	return c.run(ctx, state.New(threadID, userText))
}

// Resume continues a thread suspended at AWAIT_USER with the user's answer.
func (c *Controller) Resume(ctx context.Context, threadID, userText string) (*Outcome, error) {
	s, err := c.store.Load(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if s == nil {
		return nil, ErrThreadNotFound
	}

	switch s.Stage {
	case state.StageAwaitUser:
	case state.StageDone:
		return nil, ErrThreadClosed
	default:
		return nil, fmt.Errorf("%w: stage %s", ErrThreadNotSuspended, s.Stage)
	}

	c.logger.Info("WORKFLOW", "Resuming thread", map[string]interface{}{
		"thread_id": threadID,
		"turns":     len(s.Messages),
	})
	s.ResetForResume(userText)
	return c.run(ctx, s)
}

// Retire drops the persisted state of a closed or abandoned thread.
func (c *Controller) Retire(ctx context.Context, threadID string) error {
	return c.store.Delete(ctx, threadID)
}

// run drives s until it suspends or finishes. State is only written once the
// loop reaches AWAIT_USER or DONE, so a failing stage leaves storage untouched.
func (c *Controller) run(ctx context.Context, s *state.ConversationState) (*Outcome, error) {
	for {
		switch s.Stage {
		case state.StageExpand:
			if err := c.expand(ctx, s); err != nil {
				return nil, c.fail(s, err)
			}
		case state.StageRetrieve:
			if err := c.retrieve(ctx, s); err != nil {
				return nil, c.fail(s, err)
			}
		case state.StageAnalyze:
			if err := c.analyze(ctx, s); err != nil {
				return nil, c.fail(s, err)
			}
		case state.StageAwaitUser, state.StageDone:
			s.UpdatedAt = c.now()
			if err := c.store.Save(ctx, s); err != nil {
				return nil, fmt.Errorf("save state: %w", err)
			}
			return outcomeOf(s), nil
		default:
			return nil, &state.InconsistentStateError{Reason: fmt.Sprintf("unknown stage %q", s.Stage)}
		}
	}
}

func (c *Controller) expand(ctx context.Context, s *state.ConversationState) error {
	ctx, span := startStage(ctx, "workflow.expand", s)
	defer span.End()

	s.Expansion = nil
	s.Retrieved = nil
	s.Analysis = nil

	exp, err := c.expander.Expand(ctx, s.Messages)
	if err != nil {
		return spanError(span, err)
	}
	s.Expansion = exp
	s.Stage = state.StageRetrieve

	span.SetAttributes(attribute.Bool("query_generated", exp.IsQueryGenerated))
	c.logger.Debug("WORKFLOW", "Expansion ready", map[string]interface{}{
		"thread_id":          s.ThreadID,
		"is_query_generated": exp.IsQueryGenerated,
		"query":              exp.Query,
	})
	return nil
}

func (c *Controller) retrieve(ctx context.Context, s *state.ConversationState) error {
	ctx, span := startStage(ctx, "workflow.retrieve", s)
	defer span.End()

	span.SetAttributes(attribute.Bool("improved_search", s.ImprovedSearchRequested))

	hits, err := c.retriever.Retrieve(ctx, s)
	if err != nil {
		return spanError(span, err)
	}
	s.Retrieved = hits
	s.ImprovedSearchRequested = false
	s.Stage = state.StageAnalyze

	span.SetAttributes(attribute.Int("hits", hits.Len()))
	return nil
}

func (c *Controller) analyze(ctx context.Context, s *state.ConversationState) error {
	ctx, span := startStage(ctx, "workflow.analyze", s)
	defer span.End()

	a, err := c.analyzer.Analyze(ctx, analyzer.Input{
		UserTurns:   s.UserTurns(),
		Expansion:   s.Expansion,
		Retrieved:   s.Retrieved,
		RetryBudget: s.RetryBudget,
	})
	if err != nil {
		return spanError(span, err)
	}
	s.Analysis = a

	span.SetAttributes(
		attribute.String("status", string(a.Status)),
		attribute.Int("confidence", a.ConfidenceScore),
	)

	switch a.Status {
	case state.StatusImprovedSearch:
		if s.RetryBudget <= 0 {
			return spanError(span, &state.InconsistentStateError{Reason: "IMPROVED_SEARCH with exhausted retry budget"})
		}
		s.RetryBudget--
		s.ImprovedSearchRequested = true
		s.Stage = state.StageRetrieve
	case state.StatusMoreInfo:
		s.AppendAssistant(a.UserMessage)
		s.Stage = state.StageAwaitUser
	case state.StatusMatchFound:
		s.AppendAssistant(a.UserMessage)
		s.Stage = state.StageDone
	default:
		return spanError(span, &state.InconsistentStateError{Reason: fmt.Sprintf("unknown analyzer status %q", a.Status)})
	}

	c.logger.Info("WORKFLOW", "Analysis decided", map[string]interface{}{
		"thread_id":  s.ThreadID,
		"status":     a.Status,
		"confidence": a.ConfidenceScore,
		"next_stage": s.Stage,
	})
	return nil
}

func (c *Controller) fail(s *state.ConversationState, err error) error {
	c.logger.Error("WORKFLOW", "Stage failed", map[string]interface{}{
		"thread_id": s.ThreadID,
		"stage":     s.Stage,
		"error":     err.Error(),
	})
	return err
}

func startStage(ctx context.Context, name string, s *state.ConversationState) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("thread_id", s.ThreadID),
		attribute.Int("retry_budget", s.RetryBudget),
	))
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func outcomeOf(s *state.ConversationState) *Outcome {
	out := &Outcome{Codes: []string{}, Titles: []string{}}
	if s.Analysis == nil {
		return out
	}
	out.Status = s.Analysis.Status
	out.Message = s.Analysis.UserMessage
	out.Confidence = s.Analysis.ConfidenceScore
	if s.Analysis.Status == state.StatusMatchFound {
		out.Codes = s.Analysis.SelectedCode
		out.Titles = s.Analysis.SelectedTitle
	}
	return out
}
