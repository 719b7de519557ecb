package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yanyu/backend/internal/config"
	"yanyu/backend/internal/llm"
)

func TestNewApp(t *testing.T) {
	ollamaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer ollamaServer.Close()

	cfg := &config.Config{
		AppPort:      0,
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
		OllamaURL:    ollamaServer.URL,
		LogLevel:     "DEBUG",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)
	defer app.Close()

	assert.NotNil(t, app.Store)
	assert.NotNil(t, app.Server)

	t.Run("routes are wired", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ollama/chat", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var stats map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		assert.Equal(t, map[string]int{"totalProjects": 0, "totalFiles": 0, "totalMessages": 0}, stats)

		rec = httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ai/completions", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestNewApp_BadDatabasePath(t *testing.T) {
	// A regular file cannot be used as the parent directory.
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, writeFile(parent))

	_, err := NewApp(&config.Config{DatabasePath: filepath.Join(parent, "db.sqlite"), OllamaURL: "http://127.0.0.1:1"})
	assert.Error(t, err)
}

func TestWaitForOllama(t *testing.T) {
	ollamaRetryInterval = 10 * time.Millisecond
	t.Cleanup(func() { ollamaRetryInterval = 3 * time.Second })

	t.Run("Ready", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"models":[]}`))
		}))
		defer server.Close()

		assert.True(t, waitForOllama(context.Background(), llm.NewOllamaProvider(server.URL), time.Second))
	})

	t.Run("Gives up after the timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		start := time.Now()
		assert.False(t, waitForOllama(context.Background(), llm.NewOllamaProvider(server.URL), 100*time.Millisecond))
		assert.Less(t, time.Since(start), 2*time.Second)
	})
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	cfg := &config.Config{
		AppPort:      0,
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
		OllamaURL:    "http://127.0.0.1:1",
	}
	app, err := NewApp(cfg)
	require.NoError(t, err)
	app.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = app.Store.GetProjects(context.Background())
	assert.Error(t, err, "store must be closed after shutdown")
}

func writeFile(path string) error {
	return os.WriteFile(path, []byte("x"), 0o600)
}
