package models

// GenerateRequest is the payload sent to the content generation endpoint.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}
