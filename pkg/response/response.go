package response

// Body is the envelope for middleware and error responses. Handlers use
// fres for success bodies.
type Body struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Details any    `json:"details,omitempty"`
}

func Success(message string, data any) Body {
	return Body{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, details any) Body {
	return Body{
		Success: false,
		Code:    code,
		Message: message,
		Details: details,
	}
}
