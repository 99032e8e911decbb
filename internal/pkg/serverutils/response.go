package serverutils

import "github.com/gofiber/fiber/v2"

// BaseResponse is the envelope every endpoint answers with.
type BaseResponse[T any] struct {
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func NewResponse[T any](code int, message string, data T) *BaseResponse[T] {
	return &BaseResponse[T]{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    code < 400,
	}
}

func SuccessResponse[T any](message string, data T) *BaseResponse[T] {
	return NewResponse(fiber.StatusOK, message, data)
}

func CreatedResponse[T any](message string, data T) *BaseResponse[T] {
	return NewResponse(fiber.StatusCreated, message, data)
}

func ErrorResponse(code int, message string) *BaseResponse[any] {
	return NewResponse[any](code, message, nil)
}
