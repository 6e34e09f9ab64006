package domain

// ChatRequest is the inbound turn request. SessionID is optional: when empty
// the server synthesizes a new id and reports it back in the X-Session-Id
// response header.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ErrorResponse is the structured error body returned for pre-stream
// failures. Once fragments have been written the status is already committed
// and errors can only terminate the stream.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// APIError carries a human-readable message and a machine-readable type.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// MessagesResponse is the body of a session history read.
type MessagesResponse struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}
