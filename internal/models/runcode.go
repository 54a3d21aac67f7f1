package models

// RunCodeRequest is the payload sent to the code execution endpoint.
// The execution engine's JSON body is relayed back verbatim, so there is
// no typed response shape for this route.
type RunCodeRequest struct {
	Code string `json:"code"`
}
