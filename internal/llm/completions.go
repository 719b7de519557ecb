package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"yanyu/backend/internal/model"
	"yanyu/backend/internal/stream"
)

// Defaults for third-party completion requests.
const (
	DefaultCompletionModel       = "gpt-4"
	DefaultCompletionTemperature = 0.7
	DefaultCompletionMaxTokens   = 4096
)

var errCompletionDone = errors.New("llm: completion done")

// StreamOptions are the observer callbacks of a streamed completion. All are optional.
type StreamOptions struct {
	OnStart      func()
	OnToken      func(token string)
	OnCompletion func(completion string)
	OnError      func(err error)
}

// CompletionRequest is an OpenAI-compatible chat completion request.
type CompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []model.ChatMessage `json:"messages"`
	Temperature float64             `json:"temperature,omitempty"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Stream      bool                `json:"stream"`
}

type completionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (c *completionChunk) token() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Delta.Content
}

// HandleCompletionStream consumes an OpenAI-style SSE response. Tokens are taken
// from choices[0].delta.content; a `[DONE]` event triggers OnCompletion and ends the
// stream. Events whose data is not valid JSON are skipped. The body is always closed.
func HandleCompletionStream(resp *http.Response, opts StreamOptions) (string, error) {
	defer closeBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := newStatusError(resp)
		if opts.OnError != nil {
			opts.OnError(err)
		}
		return "", err
	}

	if opts.OnStart != nil {
		opts.OnStart()
	}

	var completion strings.Builder
	err := stream.ScanSSE(resp.Body, func(ev stream.Event) error {
		if ev.Type != stream.EventTypeEvent {
			return nil
		}
		if ev.IsDone() {
			if opts.OnCompletion != nil {
				opts.OnCompletion(completion.String())
			}
			return errCompletionDone
		}

		var chunk completionChunk
		if err := json.Unmarshal([]byte(ev.Data), &chunk); err != nil {
			slog.Warn("Skipping undecodable completion event", "error", err)
			return nil
		}
		if token := chunk.token(); token != "" {
			completion.WriteString(token)
			if opts.OnToken != nil {
				opts.OnToken(token)
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errCompletionDone) {
		err = fmt.Errorf("could not read completion stream: %w", err)
		if opts.OnError != nil {
			opts.OnError(err)
		}
		return completion.String(), err
	}
	return completion.String(), nil
}

// CompletionsProvider streams a chat completion, returning the concatenated text.
type CompletionsProvider interface {
	StreamChat(ctx context.Context, req CompletionRequest, opts StreamOptions) (string, error)
}

var _ CompletionsProvider = (*CompletionsClient)(nil)

// CompletionsClient streams chat completions from an OpenAI-compatible endpoint.
type CompletionsClient struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	defaultModel string
}

// NewCompletionsClient returns a client for baseURL (e.g. https://api.openai.com/v1).
func NewCompletionsClient(baseURL, apiKey, defaultModel string) *CompletionsClient {
	if defaultModel == "" {
		defaultModel = DefaultCompletionModel
	}
	return &CompletionsClient{
		client:       &http.Client{},
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		defaultModel: defaultModel,
	}
}

// StreamChat posts req with stream enabled and hands the response to
// HandleCompletionStream. Zero fields of req take the package defaults.
func (c *CompletionsClient) StreamChat(ctx context.Context, req CompletionRequest, opts StreamOptions) (string, error) {
	if req.Model == "" {
		req.Model = c.defaultModel
	}
	if req.Temperature == 0 {
		req.Temperature = DefaultCompletionTemperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = DefaultCompletionMaxTokens
	}
	req.Stream = true

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("could not marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		err = classifyTransportError(err)
		if opts.OnError != nil {
			opts.OnError(err)
		}
		return "", err
	}
	return HandleCompletionStream(resp, opts)
}
