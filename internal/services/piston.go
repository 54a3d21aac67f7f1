package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Execution target is fixed: the playground only runs Python snippets.
const (
	pistonLanguage = "python"
	pistonVersion  = "3.10.0"
)

// PistonClient executes code snippets through a Piston-compatible API.
type PistonClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewPistonClient(endpoint string) *PistonClient {
	return &PistonClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type pistonExecuteRequest struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Files    []pistonFile `json:"files"`
}

type pistonFile struct {
	Content string `json:"content"`
}

// Execute submits one snippet and returns the engine's JSON body verbatim.
func (c *PistonClient) Execute(ctx context.Context, code string) (json.RawMessage, error) {
	payload, err := json.Marshal(pistonExecuteRequest{
		Language: pistonLanguage,
		Version:  pistonVersion,
		Files:    []pistonFile{{Content: code}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal execute request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build execute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("code execution request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read execution response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("execution engine returned non-JSON response")
	}

	return json.RawMessage(body), nil
}
