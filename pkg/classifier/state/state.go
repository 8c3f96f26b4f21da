package state

import "time"

// InitialRetryBudget is the number of IMPROVED_SEARCH hops granted per user round.
const InitialRetryBudget = 1

// DefaultTopK is the number of corpus hits fetched per query.
const DefaultTopK = 5

// Stage is the position of a thread inside the classification workflow.
type Stage string

const (
	StageExpand    Stage = "EXPAND"
	StageRetrieve  Stage = "RETRIEVE"
	StageAnalyze   Stage = "ANALYZE"
	StageAwaitUser Stage = "AWAIT_USER"
	StageDone      Stage = "DONE"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Expansion is the expander's reading of the conversation so far.
type Expansion struct {
	Reasoning             string `json:"reasoning"`
	DivisionReason        string `json:"division_reason"`
	TitleReason           string `json:"title_reason"`
	IsQueryGenerated      bool   `json:"is_query_generated"`
	Query                 string `json:"query"`
	NoteForAnalyzer       string `json:"note_for_analyzer"`
	ClarificationQuestion string `json:"clarification_question"`
}

type Status string

const (
	StatusMatchFound     Status = "MATCH_FOUND"
	StatusMoreInfo       Status = "MORE_INFO"
	StatusImprovedSearch Status = "IMPROVED_SEARCH"
)

// Valid reports whether s is one of the three analyzer outcomes.
func (s Status) Valid() bool {
	switch s {
	case StatusMatchFound, StatusMoreInfo, StatusImprovedSearch:
		return true
	}
	return false
}

// Analysis is the arbitrator's decision. SelectedCode and SelectedTitle are
// always the same length.
type Analysis struct {
	ThoughtProcess  string   `json:"thought_process"`
	Status          Status   `json:"status"`
	SelectedCode    []string `json:"selected_code"`
	SelectedTitle   []string `json:"selected_title"`
	ConfidenceScore int      `json:"confidence_score"`
	SystemDirective string   `json:"system_directive"`
	UserMessage     string   `json:"user_message"`
}

// ConversationState is everything persisted for one thread.
type ConversationState struct {
	ThreadID string `json:"thread_id"`
	Stage    Stage  `json:"stage"`

	// Append-only transcript. The only field that survives a resume.
	Messages []Message `json:"messages"`

	Expansion *Expansion       `json:"expansion,omitempty"`
	Retrieved *RetrievalResult `json:"retrieved,omitempty"`
	Analysis  *Analysis        `json:"analysis,omitempty"`

	// Set for exactly the one ANALYZE -> RETRIEVE hop after IMPROVED_SEARCH.
	ImprovedSearchRequested bool `json:"improved_search_requested"`
	RetryBudget             int  `json:"retry_budget"`

	UpdatedAt time.Time `json:"updated_at"`
}

// New returns the initial state of a thread: stage EXPAND with a single user turn.
func New(threadID, userText string) *ConversationState {
	return &ConversationState{
		ThreadID:    threadID,
		Stage:       StageExpand,
		Messages:    []Message{{Role: RoleUser, Content: userText}},
		RetryBudget: InitialRetryBudget,
	}
}

func (s *ConversationState) AppendUser(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleUser, Content: content})
}

func (s *ConversationState) AppendAssistant(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Content: content})
}

// UserTurns returns the content of every user message, oldest first.
func (s *ConversationState) UserTurns() []string {
	turns := make([]string, 0, len(s.Messages))
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			turns = append(turns, m.Content)
		}
	}
	return turns
}

// ResetForResume appends the clarification answer and wipes every per-round
// field. Only the transcript and thread identity are kept.
func (s *ConversationState) ResetForResume(userText string) {
	s.AppendUser(userText)
	s.ResetRound()
	s.Stage = StageExpand
}

// ResetRound clears all per-round fields and restores the retry budget.
// Applying it twice is the same as applying it once.
func (s *ConversationState) ResetRound() {
	s.Expansion = nil
	s.Retrieved = nil
	s.Analysis = nil
	s.ImprovedSearchRequested = false
	s.RetryBudget = InitialRetryBudget
}

// RetriedIndicator is 1 once the round's IMPROVED_SEARCH has been spent, else 0.
func (s *ConversationState) RetriedIndicator() int {
	if s.RetryBudget > 0 {
		return 0
	}
	return 1
}
