package models

// AskRequest is the payload sent to the ask-llm endpoint.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the reply from the language model.
type AskResponse struct {
	Answer string `json:"answer"`
}
