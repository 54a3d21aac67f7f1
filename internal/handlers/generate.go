package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"codelab-backend/internal/metrics"
	"codelab-backend/internal/models"
	"codelab-backend/internal/services"
)

// Fixed messages for the two specially mapped upstream statuses.
const (
	permissionDeniedMsg = "Permission denied by the generation API. Make sure the Generative Language API is enabled for your key."
	rateLimitMsg        = "Rate limit exceeded for the generation API. Try again shortly."
)

type contentGenerator interface {
	Generate(ctx context.Context, prompt string) (*services.GenerateResult, error)
}

// GenerateHandler proxies multi-modal generation requests and relays the
// upstream body verbatim, mapping 403 and 429 to fixed messages and passing
// any other upstream status straight through.
type GenerateHandler struct {
	generator contentGenerator
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewGenerateHandler(generator contentGenerator, m *metrics.Metrics, logger zerolog.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		metrics:   m,
		logger:    logger.With().Str("handler", "generate").Logger(),
	}
}

func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing required field: prompt"))
		return
	}

	result, err := h.generator.Generate(r.Context(), req.Prompt)
	if err != nil {
		h.logger.Error().Err(err).Msg("content generation failed")
		h.metrics.RecordUpstreamFailure("imagegen")
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to generate content"))
		return
	}

	switch result.Status {
	case http.StatusOK:
		writeRawJSON(w, http.StatusOK, result.Body)
	case http.StatusForbidden:
		h.logger.Error().Int("status", result.Status).Msg("generation API refused the request")
		h.metrics.RecordUpstreamFailure("imagegen")
		writeJSON(w, http.StatusForbidden, errorRespWithDetails(permissionDeniedMsg, string(result.Body)))
	case http.StatusTooManyRequests:
		h.logger.Error().Int("status", result.Status).Msg("generation API rate limit hit")
		h.metrics.RecordUpstreamFailure("imagegen")
		writeJSON(w, http.StatusTooManyRequests, errorRespWithDetails(rateLimitMsg, string(result.Body)))
	default:
		h.logger.Error().Int("status", result.Status).Msg("generation API returned an error")
		h.metrics.RecordUpstreamFailure("imagegen")
		writeJSON(w, result.Status, errorRespWithDetails("Content generation failed", string(result.Body)))
	}
}
