package state

import "fmt"

// GenerationError means the text-generation capability failed or returned
// output that does not satisfy its schema.
type GenerationError struct {
	Component string
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Component, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// RetrievalError means the corpus lookup failed.
type RetrievalError struct {
	Query string
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed for query %q: %v", e.Query, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// InconsistentStateError means persisted or produced fields contradict each other.
type InconsistentStateError struct {
	Reason string
}

func (e *InconsistentStateError) Error() string {
	return "inconsistent state: " + e.Reason
}
