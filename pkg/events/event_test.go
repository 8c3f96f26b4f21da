package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeKeepsTypeAndTime(t *testing.T) {
	e := NewClassificationCompleted("t-1", []string{"7126.0100"}, []string{"Plumber"}, 9)

	raw, err := json.Marshal(Envelope(e))
	require.NoError(t, err)

	var back BaseEvent
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, TypeClassificationCompleted, back.EventType())
	assert.Equal(t, "t-1", back.Payload()["thread_id"])
	assert.True(t, e.Timestamp().Equal(back.Timestamp()))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		event    BaseEvent
		wantType string
		wantKeys []string
	}{
		{NewClassificationCompleted("t", nil, nil, 7), TypeClassificationCompleted, []string{"thread_id", "codes", "titles", "confidence"}},
		{NewClarificationRequested("t", "What do you build?"), TypeClarificationRequested, []string{"thread_id", "question"}},
		{NewThreadRetired("t", "closed"), TypeThreadRetired, []string{"thread_id", "reason"}},
	}

	for _, tt := range tests {
		t.Run(tt.wantType, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.event.EventType())
			for _, k := range tt.wantKeys {
				assert.Contains(t, tt.event.Payload(), k)
			}
			assert.False(t, tt.event.Timestamp().IsZero())
		})
	}
}
