package service

import (
	"context"
	"fmt"

	app_errors "yanyu/backend/internal/errors"
	"yanyu/backend/internal/llm"
	"yanyu/backend/internal/model"
)

// CompletionRequest is the body of the third-party completions relay.
type CompletionRequest struct {
	Model       string              `json:"model,omitempty"`
	Messages    []model.ChatMessage `json:"messages" validate:"required,min=1,dive"`
	Temperature float64             `json:"temperature,omitempty" validate:"gte=0,lte=2"`
	MaxTokens   int                 `json:"maxTokens,omitempty" validate:"gte=0"`
}

// CompletionService streams completions from an OpenAI-compatible endpoint.
type CompletionService struct {
	client llm.CompletionsProvider
}

// NewCompletionService accepts a nil client, in which case every call fails with
// ErrBackendUnavailable.
func NewCompletionService(client llm.CompletionsProvider) *CompletionService {
	return &CompletionService{client: client}
}

// Enabled reports whether a completions endpoint is configured.
func (s *CompletionService) Enabled() bool {
	return s.client != nil
}

// Stream calls onToken for every token and returns the full completion.
func (s *CompletionService) Stream(ctx context.Context, req *CompletionRequest, onToken func(token string)) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: completions endpoint is not configured", app_errors.ErrBackendUnavailable)
	}
	return s.client.StreamChat(ctx, llm.CompletionRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}, llm.StreamOptions{OnToken: onToken})
}
