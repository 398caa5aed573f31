package dtos

// Response is the envelope every HTTP handler writes; Data carries the
// operation result and Errors is only set on failure responses.
type Response[T any] struct {
	Message   string         `json:"message"`
	Data      T              `json:"data"`
	RequestID string         `json:"request_id,omitempty"`
	Errors    *ErrorResponse `json:"errors,omitempty"`
}

// ErrorResponse mirrors AppError for the wire; Field names the offending
// request field when validation produced the error.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
