package serverutils

// Response is the envelope of every API answer.
type Response[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// ErrorResponseWithData carries extra detail, e.g. rejected fields.
func ErrorResponseWithData(code int, message string, data any) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Message: message,
		Data:    data,
	}
}
