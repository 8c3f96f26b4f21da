// Package retriever looks up candidate occupations for the current query.
package retriever

import (
	"context"

	"nco-classifier-be/pkg/classifier/state"
)

// Corpus is a read-only similarity index over the occupation reference set.
type Corpus interface {
	Query(ctx context.Context, text string, n int) (*state.RetrievalResult, error)
}

type Retriever struct {
	corpus Corpus
	topK   int
}

func New(corpus Corpus, topK int) *Retriever {
	if topK <= 0 {
		topK = state.DefaultTopK
	}
	return &Retriever{corpus: corpus, topK: topK}
}

// SelectQuery picks the text to search for. ok is false when nothing should be
// retrieved because the expander asked for clarification instead.
func SelectQuery(s *state.ConversationState) (query string, ok bool, err error) {
	if s.ImprovedSearchRequested {
		if s.Analysis == nil || s.Analysis.SystemDirective == "" {
			return "", false, &state.InconsistentStateError{Reason: "improved search requested without a search directive"}
		}
		return s.Analysis.SystemDirective, true, nil
	}

	if s.Expansion == nil {
		return "", false, &state.InconsistentStateError{Reason: "retrieval reached without an expansion"}
	}

	exp := s.Expansion
	switch {
	case exp.IsQueryGenerated && exp.Query != "":
		return exp.Query, true, nil
	case !exp.IsQueryGenerated && exp.Query == "":
		return "", false, nil
	case exp.IsQueryGenerated:
		return "", false, &state.InconsistentStateError{Reason: "is_query_generated is true but query is empty"}
	default:
		return "", false, &state.InconsistentStateError{Reason: "is_query_generated is false but query is not empty"}
	}
}

// Retrieve returns the result set the state should hold after this step.
// On an improved-search hop the new hits are appended after the existing ones.
func (r *Retriever) Retrieve(ctx context.Context, s *state.ConversationState) (*state.RetrievalResult, error) {
	query, ok, err := SelectQuery(s)
	if err != nil {
		return nil, err
	}

	var fresh *state.RetrievalResult
	if ok {
		fresh, err = r.corpus.Query(ctx, query, r.topK)
		if err != nil {
			return nil, &state.RetrievalError{Query: query, Err: err}
		}
	}

	if s.ImprovedSearchRequested {
		return state.Merge(s.Retrieved, fresh), nil
	}
	return fresh, nil
}
