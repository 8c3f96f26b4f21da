package apperror

import (
	"errors"
	"fmt"
)

// ErrorCode is the machine-readable code returned to API clients.
type ErrorCode string

const (
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrUnauthorized        ErrorCode = "UNAUTHORIZED"         // 401
	ErrSessionNotFound     ErrorCode = "SESSION_NOT_FOUND"    // 404
	ErrThreadMismatch      ErrorCode = "THREAD_MISMATCH"      // 404
	ErrThreadNotFound      ErrorCode = "THREAD_NOT_FOUND"     // 404
	ErrThreadClosed        ErrorCode = "THREAD_CLOSED"        // 409
	ErrThreadInUse         ErrorCode = "THREAD_IN_USE"        // 409
	ErrUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE" // 503
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

type AppError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	cause   error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func NewInvalidRequest(msg string) *AppError {
	return &AppError{Code: ErrInvalidRequest, Status: 400, Message: msg}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{Code: ErrUnauthorized, Status: 401, Message: msg}
}

func NewSessionNotFound(sessionId string) *AppError {
	return &AppError{
		Code:    ErrSessionNotFound,
		Status:  404,
		Message: "session not found",
		Details: map[string]any{"session_id": sessionId},
	}
}

func NewThreadMismatch(threadId string) *AppError {
	return &AppError{
		Code:    ErrThreadMismatch,
		Status:  404,
		Message: "thread does not belong to this session",
		Details: map[string]any{"thread_id": threadId},
	}
}

// NewThreadNotFound is returned when a resume targets a thread with no stored conversation.
func NewThreadNotFound(threadId string) *AppError {
	return &AppError{
		Code:    ErrThreadNotFound,
		Status:  404,
		Message: "no conversation to resume on this thread",
		Details: map[string]any{"thread_id": threadId},
	}
}

func NewThreadClosed(threadId string) *AppError {
	return &AppError{
		Code:    ErrThreadClosed,
		Status:  409,
		Message: "thread is closed, start a new chat",
		Details: map[string]any{"thread_id": threadId},
	}
}

func NewThreadInUse(threadId, msg string) *AppError {
	return &AppError{
		Code:    ErrThreadInUse,
		Status:  409,
		Message: msg,
		Details: map[string]any{"thread_id": threadId},
	}
}

// NewUpstreamUnavailable hides the failing capability behind a retryable 503.
func NewUpstreamUnavailable(err error) *AppError {
	return &AppError{
		Code:    ErrUpstreamUnavailable,
		Status:  503,
		Message: "classification service temporarily unavailable, please retry",
		cause:   err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Status:  500,
		Message: "internal error",
		cause:   err,
	}
}

// Is checks if err is (or wraps) an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
