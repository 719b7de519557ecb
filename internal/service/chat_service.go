package service

import (
	"context"
	"fmt"
	"log/slog"

	"yanyu/backend/internal/llm"
	"yanyu/backend/internal/model"
)

// ChatService relays chat requests to the inference backend.
type ChatService struct {
	llm llm.LLMProvider
}

// ChatRequest is the body accepted by the chat relay. Content is a pointer so that a
// missing content field can be told apart from an empty one.
type ChatRequest struct {
	Model    string           `json:"model" validate:"required" example:"llama3:8b"`
	Messages []RequestMessage `json:"messages" validate:"required,dive"`
	Stream   bool             `json:"stream"`
	Options  map[string]any   `json:"options,omitempty"`
}

// RequestMessage is one inbound chat message.
type RequestMessage struct {
	Role    string  `json:"role" validate:"required,oneof=user assistant system" example:"user"`
	Content *string `json:"content" validate:"required" example:"Hello"`
}

func NewChatService(llm llm.LLMProvider) *ChatService {
	return &ChatService{llm: llm}
}

// Health reports backend reachability. It fails only when ctx ended before the
// probe could run.
func (s *ChatService) Health(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("health check aborted: %w", err)
	}
	return s.llm.CheckHealth(ctx), nil
}

// Complete runs req without streaming and returns the backend's single reply.
func (s *ChatService) Complete(ctx context.Context, req *ChatRequest) (*model.StreamChunk, error) {
	slog.Debug("Relaying buffered chat", "model", req.Model, "messages", len(req.Messages))
	return s.llm.ChatCompletion(ctx, toBackendRequest(req))
}

// Stream runs req in streaming mode, handing every backend frame to fn in arrival
// order. An error from fn stops the stream and is returned unchanged.
func (s *ChatService) Stream(ctx context.Context, req *ChatRequest, fn func(model.StreamChunk) error) error {
	slog.Debug("Relaying streamed chat", "model", req.Model, "messages", len(req.Messages))
	return s.llm.ChatStream(ctx, toBackendRequest(req), fn)
}

func toBackendRequest(req *ChatRequest) *llm.ChatRequest {
	messages := make([]model.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msg := model.ChatMessage{Role: m.Role}
		if m.Content != nil {
			msg.Content = *m.Content
		}
		messages = append(messages, msg)
	}
	return &llm.ChatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   req.Stream,
		Options:  req.Options,
	}
}
