package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"codelab-backend/internal/metrics"
	"codelab-backend/internal/models"
)

type fakeLocalGenerator struct {
	calls int64

	mu         sync.Mutex
	lastModel  string
	lastPrompt string

	answer string
	err    error
}

func (f *fakeLocalGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	atomic.AddInt64(&f.calls, 1)
	f.mu.Lock()
	f.lastPrompt = prompt
	f.lastModel = model
	f.mu.Unlock()
	return f.answer, f.err
}

func TestLocalModel_MissingPrompt(t *testing.T) {
	local := &fakeLocalGenerator{}
	h := NewLocalModelHandler(local, "llama3", metrics.New(), zerolog.Nop())

	rr := postJSON(t, h.Ask, "/ask-local-model", map[string]string{})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error == "" {
		t.Error("Expected error field in response")
	}
	if atomic.LoadInt64(&local.calls) != 0 {
		t.Errorf("Expected no upstream calls, got %d", local.calls)
	}
}

func TestLocalModel_MapsResponseToAnswer(t *testing.T) {
	local := &fakeLocalGenerator{answer: "42"}
	h := NewLocalModelHandler(local, "llama3", metrics.New(), zerolog.Nop())

	rr := postJSON(t, h.Ask, "/ask-local-model", map[string]string{"prompt": "what is 6*7?"})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp models.LocalModelResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Answer != "42" {
		t.Errorf("Expected answer %q, got %q", "42", resp.Answer)
	}
}

func TestLocalModel_ModelDefaulting(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]string
		expected string
	}{
		{"defaults when absent", map[string]string{"prompt": "hi"}, "llama3"},
		{"honors explicit model", map[string]string{"prompt": "hi", "model": "mistral"}, "mistral"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			local := &fakeLocalGenerator{answer: "ok"}
			h := NewLocalModelHandler(local, "llama3", metrics.New(), zerolog.Nop())

			rr := postJSON(t, h.Ask, "/ask-local-model", tc.body)

			if rr.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", rr.Code)
			}
			if local.lastModel != tc.expected {
				t.Errorf("Expected model %q, got %q", tc.expected, local.lastModel)
			}
		})
	}
}

func TestLocalModel_UpstreamFailure(t *testing.T) {
	local := &fakeLocalGenerator{err: errors.New("model not found")}
	h := NewLocalModelHandler(local, "llama3", metrics.New(), zerolog.Nop())

	rr := postJSON(t, h.Ask, "/ask-local-model", map[string]string{"prompt": "hi"})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error == "" {
		t.Error("Expected error field in response")
	}
}
