package services

import "fmt"

// UpstreamError reports a non-success status returned by an upstream with
// whatever body accompanied it. Handlers use it to choose the reply status
// and to embed the raw upstream text as error details.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}
