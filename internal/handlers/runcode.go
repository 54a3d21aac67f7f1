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

type codeRunner interface {
	Execute(ctx context.Context, code string) (json.RawMessage, error)
}

// RunCodeHandler proxies code snippets to the execution engine and relays
// its JSON result verbatim.
type RunCodeHandler struct {
	runner  codeRunner
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewRunCodeHandler(runner codeRunner, m *metrics.Metrics, logger zerolog.Logger) *RunCodeHandler {
	return &RunCodeHandler{
		runner:  runner,
		metrics: m,
		logger:  logger.With().Str("handler", "run-code").Logger(),
	}
}

func (h *RunCodeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req models.RunCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Code) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing required field: code"))
		return
	}

	result, err := h.runner.Execute(r.Context(), req.Code)
	if err != nil {
		h.logger.Error().Err(err).Msg("code execution failed")
		h.metrics.RecordUpstreamFailure("piston")
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to execute code"))
		return
	}

	writeRawJSON(w, http.StatusOK, result)
}
