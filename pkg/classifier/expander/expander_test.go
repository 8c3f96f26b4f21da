package expander

import (
	"context"
	"errors"
	"testing"

	"nco-classifier-be/pkg/classifier/state"
	"nco-classifier-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

const plumberReply = `{
  "reasoning": "No clarification: skilled repair of water systems.",
  "division_reason": "Trade skills map to Division 7.",
  "title_reason": "Plumber is the standard title.",
  "is_query_generated": true,
  "query": "Division: Craft and Related Trades Workers | Title: Plumber | Description: Installs and repairs pipes.",
  "note_for_analyzer": "No assumptions regarding Division made.",
  "clarification_question": ""
}`

const constructionReply = `{
  "reasoning": "Hard clarification: location only.",
  "division_reason": "Ambiguous between Div 2, 7 and 9.",
  "title_reason": "",
  "is_query_generated": false,
  "query": "",
  "note_for_analyzer": "No assumptions regarding Division made.",
  "clarification_question": "What is your main task on the site?"
}`

func TestExpand(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		reply     string
		wantQuery bool
	}{
		{name: "clear trade", input: "I fix pipes, taps and water leaks in people's homes", reply: plumberReply, wantQuery: true},
		{name: "location only", input: "I work at a construction site", reply: constructionReply, wantQuery: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(mockProvider)
			p.On("Chat", mock.Anything, mock.MatchedBy(func(h []llm.Message) bool {
				return len(h) == 2 && h[0].Role == "system" && h[1].Content == tt.input
			})).Return(tt.reply, nil)

			exp, err := New(p, Config{}).Expand(context.Background(), []state.Message{{Role: state.RoleUser, Content: tt.input}})

			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, exp.IsQueryGenerated)
			if tt.wantQuery {
				assert.Contains(t, exp.Query, "Division: ")
				assert.Contains(t, exp.Query, "| Title: ")
				assert.Contains(t, exp.Query, "| Description: ")
				assert.Empty(t, exp.ClarificationQuestion)
			} else {
				assert.Empty(t, exp.Query)
				assert.NotEmpty(t, exp.ClarificationQuestion)
			}
			p.AssertExpectations(t)
		})
	}
}

func TestExpandFailuresAreGenerationErrors(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "transport", err: errors.New("timeout")},
		{name: "missing required", reply: `{"reasoning":"x"}`},
		{name: "wrong type", reply: `{"reasoning":"x","division_reason":"y","is_query_generated":"yes","note_for_analyzer":""}`},
		{name: "vague without question", reply: `{"reasoning":"x","division_reason":"ambiguous","is_query_generated":false,"query":"","note_for_analyzer":"","clarification_question":""}`},
		{name: "vague with blank question", reply: `{"reasoning":"x","division_reason":"ambiguous","is_query_generated":false,"query":"","note_for_analyzer":"","clarification_question":"  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(mockProvider)
			p.On("Chat", mock.Anything, mock.Anything).Return(tt.reply, tt.err)

			_, err := New(p, Config{}).Expand(context.Background(), []state.Message{{Role: state.RoleUser, Content: "hi"}})

			var genErr *state.GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, "expander", genErr.Component)
		})
	}
}

func TestExpandPassesWholeTranscript(t *testing.T) {
	p := new(mockProvider)
	p.On("Chat", mock.Anything, mock.MatchedBy(func(h []llm.Message) bool {
		return len(h) == 4 && h[2].Role == "assistant" && h[3].Content == "I lay bricks"
	})).Return(plumberReply, nil)

	msgs := []state.Message{
		{Role: state.RoleUser, Content: "I work at a construction site"},
		{Role: state.RoleAssistant, Content: "What do you do there?"},
		{Role: state.RoleUser, Content: "I lay bricks"},
	}
	_, err := New(p, Config{}).Expand(context.Background(), msgs)

	require.NoError(t, err)
	p.AssertExpectations(t)
}
