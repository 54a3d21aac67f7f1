package models

// LocalModelRequest is the payload sent to the local model endpoint.
// Model is optional; the handler falls back to the configured default.
type LocalModelRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// LocalModelResponse is the reply from the local model server.
type LocalModelResponse struct {
	Answer string `json:"answer"`
}
