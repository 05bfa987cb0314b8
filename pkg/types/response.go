package types

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// OKResponse is the body of acknowledgement-only endpoints.
type OKResponse struct {
	OK bool `json:"ok"`
}

// MessageResponse acknowledges a completed delete.
type MessageResponse struct {
	Message string `json:"message"`
}
