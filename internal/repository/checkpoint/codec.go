// Package checkpoint implements workflow.StateStore on the available backends.
// Every backend stores the serialized state, so a loaded value never aliases
// what is stored.
package checkpoint

import (
	"encoding/json"
	"fmt"

	"nco-classifier-be/pkg/classifier/state"
)

func encode(s *state.ConversationState) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state for thread %s: %w", s.ThreadID, err)
	}
	return raw, nil
}

func decode(threadID string, raw []byte) (*state.ConversationState, error) {
	var s state.ConversationState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode state for thread %s: %w", threadID, err)
	}
	return &s, nil
}
