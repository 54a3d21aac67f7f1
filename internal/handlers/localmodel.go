package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"codelab-backend/internal/metrics"
	"codelab-backend/internal/models"
)

type localGenerator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// LocalModelHandler proxies prompts to the locally hosted model server.
type LocalModelHandler struct {
	local        localGenerator
	defaultModel string
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

func NewLocalModelHandler(local localGenerator, defaultModel string, m *metrics.Metrics, logger zerolog.Logger) *LocalModelHandler {
	return &LocalModelHandler{
		local:        local,
		defaultModel: defaultModel,
		metrics:      m,
		logger:       logger.With().Str("handler", "ask-local-model").Logger(),
	}
}

func (h *LocalModelHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.LocalModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing required field: prompt"))
		return
	}

	model := req.Model
	if model == "" {
		model = h.defaultModel
	}

	answer, err := h.local.Generate(r.Context(), req.Prompt, model)
	if err != nil {
		h.logger.Error().Err(err).Str("model", model).Msg("local model call failed")
		h.metrics.RecordUpstreamFailure("ollama")
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to get answer from local model"))
		return
	}

	writeJSON(w, http.StatusOK, models.LocalModelResponse{Answer: answer})
}
