package serverutils

type BaseResponse[T any] struct {
	Success   bool           `json:"success"`
	Code      int            `json:"code"`
	ErrorCode string         `json:"error_code,omitempty"`
	Message   string         `json:"message"`
	Data      T              `json:"data,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

func SuccessResponse[T any](message string, data T) *BaseResponse[T] {
	return &BaseResponse[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) *BaseResponse[any] {
	return &BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}
