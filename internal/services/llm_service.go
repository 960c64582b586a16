package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ErrClassifierUnavailable wraps any failure to get a response out of the
// model: network errors, timeouts, quota. Callers treat all of these the
// same way.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// LLMService is the one gateway to the hosted text model. One string in, one
// string out; no retries, no streaming.
type LLMService struct {
	client llms.Model
}

// NewLLMService initializes the Gemini client once; the instance is shared
// across requests.
func NewLLMService(apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	llm, err := googleai.New(context.Background(),
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{client: llm}, nil
}

// Generate sends the prompt and returns the model's raw text. The caller
// owns the context deadline.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.client, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	return resp, nil
}
