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

// ImageGenClient calls the generative-language REST API for multi-modal
// (text + image) generation. It is a raw HTTP client rather than the SDK
// because callers need the upstream status code and body verbatim.
type ImageGenClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewImageGenClient(baseURL, apiKey, model string) *ImageGenClient {
	return &ImageGenClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateResult carries the upstream's status code and raw JSON body so the
// handler can map or pass both through.
type GenerateResult struct {
	Status int
	Body   json.RawMessage
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

// Generate requests text+image content for the prompt. A non-success status
// is not an error here; it is reported through GenerateResult.Status so the
// caller decides how to relay it. Only transport-level failures return errors.
func (c *ImageGenClient) Generate(ctx context.Context, prompt string) (*GenerateResult, error) {
	payload, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}

	return &GenerateResult{
		Status: resp.StatusCode,
		Body:   json.RawMessage(body),
	}, nil
}
