package models

// ErrorResponse is the uniform error envelope every route replies with.
// Details carries the upstream's raw error text when one is available.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
