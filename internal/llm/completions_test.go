package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yanyu/backend/internal/model"
)

func sseResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/event-stream"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

type recorder struct {
	started    int
	tokens     []string
	completion string
	completed  int
	errs       []error
}

func (r *recorder) options() StreamOptions {
	return StreamOptions{
		OnStart:      func() { r.started++ },
		OnToken:      func(tok string) { r.tokens = append(r.tokens, tok) },
		OnCompletion: func(c string) { r.completion = c; r.completed++ },
		OnError:      func(err error) { r.errs = append(r.errs, err) },
	}
}

func TestHandleCompletionStream(t *testing.T) {
	t.Run("tokens then done", func(t *testing.T) {
		body := `data: {"choices":[{"delta":{"content":"Hel"}}]}` + "\n\n" +
			": keep-alive\n\n" +
			`data: {"choices":[{"delta":{"content":"lo"}}]}` + "\n\n" +
			"data: [DONE]\n\n" +
			`data: {"choices":[{"delta":{"content":"late"}}]}` + "\n\n"
		var rec recorder

		text, err := HandleCompletionStream(sseResponse(http.StatusOK, body), rec.options())

		require.NoError(t, err)
		assert.Equal(t, "Hello", text)
		assert.Equal(t, 1, rec.started)
		assert.Equal(t, []string{"Hel", "lo"}, rec.tokens)
		assert.Equal(t, 1, rec.completed)
		assert.Equal(t, "Hello", rec.completion)
		assert.Empty(t, rec.errs)
	})

	t.Run("malformed payloads are skipped", func(t *testing.T) {
		body := "data: not json\n\n" +
			`data: {"choices":[]}` + "\n\n" +
			`data: {"choices":[{"delta":{"content":"ok"}}]}` + "\n\n" +
			"data: [DONE]\n\n"
		var rec recorder

		text, err := HandleCompletionStream(sseResponse(http.StatusOK, body), rec.options())

		require.NoError(t, err)
		assert.Equal(t, "ok", text)
		assert.Equal(t, []string{"ok"}, rec.tokens)
	})

	t.Run("non-2xx calls OnError", func(t *testing.T) {
		var rec recorder

		_, err := HandleCompletionStream(sseResponse(http.StatusUnauthorized, `{"error":"bad key"}`), rec.options())

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
		assert.Zero(t, rec.started)
		require.Len(t, rec.errs, 1)
	})

	t.Run("nil callbacks are allowed", func(t *testing.T) {
		text, err := HandleCompletionStream(sseResponse(http.StatusOK, `data: {"choices":[{"delta":{"content":"x"}}]}`+"\n\n"), StreamOptions{})
		require.NoError(t, err)
		assert.Equal(t, "x", text)
	})
}

func TestCompletionsClient_StreamChat(t *testing.T) {
	var captured CompletionRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, `data: {"choices":[{"delta":{"content":"Hi"}}]}`+"\n\n")
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := NewCompletionsClient(server.URL+"/v1/", "sk-test", "")
	var rec recorder
	text, err := client.StreamChat(context.Background(), CompletionRequest{
		Messages: []model.ChatMessage{{Role: model.RoleUser, Content: "hello"}},
	}, rec.options())

	require.NoError(t, err)
	assert.Equal(t, "Hi", text)
	assert.Equal(t, "Bearer sk-test", authHeader)
	assert.Equal(t, DefaultCompletionModel, captured.Model)
	assert.Equal(t, DefaultCompletionTemperature, captured.Temperature)
	assert.Equal(t, DefaultCompletionMaxTokens, captured.MaxTokens)
	assert.True(t, captured.Stream)
	assert.Equal(t, "Hi", rec.completion)
}
