package serverutils

import "drama-llm-be/internal/dto"

// Response is the envelope every endpoint returns.
type Response[T any] struct {
	Success    bool            `json:"success"`
	Code       int             `json:"code,omitempty"`
	Message    string          `json:"message,omitempty"`
	Data       T               `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
	Pagination *dto.Pagination `json:"pagination,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func PaginatedResponse[T any](message string, data T, pagination *dto.Pagination) Response[T] {
	return Response[T]{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	}
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Error:   message,
	}
}
