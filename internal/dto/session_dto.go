package dto

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
	ThreadId  string `json:"thread_id"`
	Token     string `json:"token"`
}

type ValidateSessionRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid"`
	ThreadId  string `json:"thread_id" validate:"required,uuid"`
}

type ValidateSessionResponse struct {
	Message string `json:"message"`
}

type NewChatResponse struct {
	ThreadId string `json:"thread_id"`
}
