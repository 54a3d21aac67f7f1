package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// AnswerFallback is returned when the model produces no usable text, so the
// caller always receives an answer string rather than an error.
const AnswerFallback = "Sorry, I could not come up with an answer to that."

// GeminiService answers single-turn questions through the Gemini API.
type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger zerolog.Logger
}

func NewGeminiService(apiKey, modelName string, logger zerolog.Logger) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	return &GeminiService{
		client: client,
		model:  model,
		logger: logger.With().Str("component", "gemini").Logger(),
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// Answer asks the model one question and returns the extracted text, or the
// fallback string when the model replies with no text at all.
func (s *GeminiService) Answer(ctx context.Context, question string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(question))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		s.logger.Warn().Msg("Gemini returned empty text, using fallback answer")
		return AnswerFallback, nil
	}

	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
