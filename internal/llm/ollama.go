package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	app_errors "yanyu/backend/internal/errors"
	"yanyu/backend/internal/model"
	"yanyu/backend/internal/stream"
)

// healthTimeout bounds a single health probe.
const healthTimeout = 5 * time.Second

// LLMProvider defines the interface for interacting with the local inference server.
type LLMProvider interface {
	CheckHealth(ctx context.Context) bool
	ListModels(ctx context.Context) []model.OllamaModel
	PullModel(ctx context.Context, name string, onProgress func(percent float64)) error
	DeleteModel(ctx context.Context, name string) error

	// Chat and Generate stream when onStream is non-nil and return the full text either way.
	Chat(ctx context.Context, modelName string, messages []model.ChatMessage, onStream func(fragment string)) (string, error)
	Generate(ctx context.Context, modelName, prompt string, onStream func(fragment string)) (string, error)

	// ChatCompletion and ChatStream expose whole backend frames for the relay.
	ChatCompletion(ctx context.Context, req *ChatRequest) (*model.StreamChunk, error)
	ChatStream(ctx context.Context, req *ChatRequest, fn func(model.StreamChunk) error) error
}

// ChatRequest is the body of /api/chat and /api/generate.
type ChatRequest struct {
	Model    string              `json:"model"`
	Messages []model.ChatMessage `json:"messages,omitempty"`
	Prompt   string              `json:"prompt,omitempty"`
	Stream   bool                `json:"stream"`
	Options  map[string]any      `json:"options,omitempty"`

	generate bool
}

func (r *ChatRequest) endpoint() string {
	if r.generate {
		return "/api/generate"
	}
	return "/api/chat"
}

type ollamaProvider struct {
	client *http.Client
	url    string
}

// NewOllamaProvider returns a client for the Ollama server at url. Streaming replies
// can last minutes, so the HTTP client carries no global timeout; callers bound
// requests with their context.
func NewOllamaProvider(url string) LLMProvider {
	return &ollamaProvider{
		client: &http.Client{},
		url:    strings.TrimRight(url, "/"),
	}
}

// CheckHealth reports whether /api/tags answers with a success status. It never
// fails: any transport error means false.
func (p *ollamaProvider) CheckHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	resp, err := p.do(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		slog.Debug("Ollama health check failed", "url", p.url, "error", err)
		return false
	}
	defer closeBody(resp.Body)
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// ListModels returns the local model catalog, or an empty list when the backend is
// unreachable or answers with garbage.
func (p *ollamaProvider) ListModels(ctx context.Context) []model.OllamaModel {
	resp, err := p.do(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		slog.Warn("Could not list Ollama models", "error", err)
		return []model.OllamaModel{}
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Could not list Ollama models", "error", newStatusError(resp))
		return []model.OllamaModel{}
	}

	var tags struct {
		Models []model.OllamaModel `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		slog.Warn("Could not decode Ollama model list", "error", err)
		return []model.OllamaModel{}
	}
	if tags.Models == nil {
		return []model.OllamaModel{}
	}
	return tags.Models
}

// PullModel downloads a model, reporting completed/total*100 for every progress frame
// that carries both numbers.
func (p *ollamaProvider) PullModel(ctx context.Context, name string, onProgress func(percent float64)) error {
	resp, err := p.do(ctx, http.MethodPost, "/api/pull", map[string]any{"name": name, "stream": true})
	if err != nil {
		return err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return newStatusError(resp)
	}

	err = stream.ScanNDJSON(resp.Body, func(f model.PullProgress) error {
		if f.Error != "" {
			return fmt.Errorf("pull of %q failed: %s", name, f.Error)
		}
		if f.Total > 0 && f.Completed > 0 && onProgress != nil {
			onProgress(float64(f.Completed) / float64(f.Total) * 100)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not read pull stream: %w", err)
	}
	return nil
}

// DeleteModel removes a local model.
func (p *ollamaProvider) DeleteModel(ctx context.Context, name string) error {
	resp, err := p.do(ctx, http.MethodDelete, "/api/delete", map[string]string{"name": name, "model": name})
	if err != nil {
		return err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return newStatusError(resp)
	}
	return nil
}

func (p *ollamaProvider) Chat(ctx context.Context, modelName string, messages []model.ChatMessage, onStream func(string)) (string, error) {
	return p.collect(ctx, &ChatRequest{Model: modelName, Messages: messages}, onStream)
}

func (p *ollamaProvider) Generate(ctx context.Context, modelName, prompt string, onStream func(string)) (string, error) {
	return p.collect(ctx, &ChatRequest{Model: modelName, Prompt: prompt, generate: true}, onStream)
}

// collect runs req in streaming mode when onStream is set and concatenates the
// fragments, or in buffered mode otherwise. Both paths return the same text.
func (p *ollamaProvider) collect(ctx context.Context, req *ChatRequest, onStream func(string)) (string, error) {
	if onStream == nil {
		chunk, err := p.ChatCompletion(ctx, req)
		if err != nil {
			return "", err
		}
		return chunk.Response, nil
	}

	var full strings.Builder
	err := p.ChatStream(ctx, req, func(chunk model.StreamChunk) error {
		if chunk.Response != "" {
			full.WriteString(chunk.Response)
			onStream(chunk.Response)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return full.String(), nil
}

// ChatCompletion issues a non-streaming request and returns the single reply.
func (p *ollamaProvider) ChatCompletion(ctx context.Context, req *ChatRequest) (*model.StreamChunk, error) {
	req.Stream = false
	resp, err := p.do(ctx, http.MethodPost, req.endpoint(), req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(resp)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	var chunk model.StreamChunk
	if err := json.Unmarshal(bodyBytes, &chunk); err != nil {
		return nil, fmt.Errorf("%w: could not decode response: %s", app_errors.ErrBackendProtocol, truncate(string(bodyBytes), 200))
	}
	chunk.Normalize()
	chunk.Raw = bodyBytes
	return &chunk, nil
}

// ChatStream issues a streaming request and calls fn for every frame, in order,
// before reading the next one. The stream ends after the frame with Done set, at
// EOF, or when fn returns an error, which is returned unchanged. The response body
// is closed on every path.
func (p *ollamaProvider) ChatStream(ctx context.Context, req *ChatRequest, fn func(model.StreamChunk) error) error {
	req.Stream = true
	resp, err := p.do(ctx, http.MethodPost, req.endpoint(), req)
	if err != nil {
		return err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return newStatusError(resp)
	}

	var fnErr error
	err = stream.ScanNDJSON(resp.Body, func(chunk model.StreamChunk) error {
		chunk.Normalize()
		if fnErr = fn(chunk); fnErr != nil {
			return fnErr
		}
		if chunk.Done {
			return errStreamDone
		}
		return nil
	})
	switch {
	case err == nil, errors.Is(err, errStreamDone):
		return nil
	case fnErr != nil:
		return fnErr
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("could not read chat stream: %w", err)
	}
}

func (p *ollamaProvider) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, p.url+path, body)
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	return resp, nil
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		slog.Debug("Failed to close response body", "error", err)
	}
}

// truncate shortens a string to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
