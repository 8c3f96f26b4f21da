package dto

type ChatRequest struct {
	ThreadId    string `json:"thread_id" validate:"required,uuid"`
	UserMessage string `json:"user_message" validate:"required,min=1,max=2000"`
}

// ChatResponse carries either a clarification question (MORE_INFO) or the
// final classification (MATCH_FOUND) in Result.
type ChatResponse struct {
	Status     string   `json:"status"`
	Result     string   `json:"result"`
	Codes      []string `json:"codes,omitempty"`
	Titles     []string `json:"titles,omitempty"`
	Confidence int      `json:"confidence,omitempty"`
}

// ThreadRetiredMessage is the payload of the internal thread cleanup topic.
type ThreadRetiredMessage struct {
	ThreadId string `json:"thread_id"`
	Reason   string `json:"reason"`
}
