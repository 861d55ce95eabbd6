// Package api holds the response envelopes and error mapping shared by all handlers.
package api

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

// MessageResponse is returned by endpoints without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}
