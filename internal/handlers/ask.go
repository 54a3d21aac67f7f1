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

type questionAnswerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// AskHandler proxies single-turn questions to the language model and replies
// with the extracted answer text.
type AskHandler struct {
	llm     questionAnswerer
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewAskHandler(llm questionAnswerer, m *metrics.Metrics, logger zerolog.Logger) *AskHandler {
	return &AskHandler{
		llm:     llm,
		metrics: m,
		logger:  logger.With().Str("handler", "ask-llm").Logger(),
	}
}

func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing required field: question"))
		return
	}

	answer, err := h.llm.Answer(r.Context(), req.Question)
	if err != nil {
		h.logger.Error().Err(err).Msg("language model call failed")
		h.metrics.RecordUpstreamFailure("gemini")
		writeJSON(w, http.StatusInternalServerError,
			errorRespWithDetails("Failed to get answer from language model", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, models.AskResponse{Answer: answer})
}
