package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"yanyu/backend/internal/api"
	"yanyu/backend/internal/config"
	"yanyu/backend/internal/llm"
	"yanyu/backend/internal/repository"
	"yanyu/backend/internal/service"
)

// shutdownTimeout bounds how long open streams get to finish on shutdown.
const shutdownTimeout = 15 * time.Second

// App holds the wired dependencies of the server.
type App struct {
	Config *config.Config
	Store  *repository.SQLiteStore
	LLM    llm.LLMProvider
	Models *service.ModelService
	Server *http.Server
}

// NewApp initializes the store and wires services, handlers and the HTTP server.
func NewApp(cfg *config.Config) (*App, error) {
	store := repository.NewSQLiteStore(cfg.DatabasePath)
	if err := store.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	slog.Info("Local store initialized", "path", cfg.DatabasePath)

	ollamaProvider := llm.NewOllamaProvider(cfg.OllamaURL)

	var completions llm.CompletionsProvider
	if cfg.CompletionsURL != "" {
		completions = llm.NewCompletionsClient(cfg.CompletionsURL, cfg.CompletionsAPIKey, cfg.CompletionsModel)
		slog.Info("Completions relay enabled", "url", cfg.CompletionsURL, "model", cfg.CompletionsModel)
	}

	chatService := service.NewChatService(ollamaProvider)
	completionService := service.NewCompletionService(completions)
	modelService := service.NewModelService(ollamaProvider)
	projectService := service.NewProjectService(store)

	router := api.NewRouter(api.Handlers{
		Chat:        api.NewChatHandler(chatService),
		Completions: api.NewCompletionHandler(completionService),
		Models:      api.NewModelHandler(modelService),
		Projects:    api.NewProjectHandler(projectService),
		ChatLimiter: api.NewRateLimiter(cfg.ChatRateLimit, cfg.ChatRateBurst),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		Config: cfg,
		Store:  store,
		LLM:    ollamaProvider,
		Models: modelService,
		Server: server,
	}, nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully
// and releases the store.
func (a *App) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}

	a.Close()
	return serveErr
}

// Close stops background pulls and closes the store.
func (a *App) Close() {
	a.Models.Shutdown()
	if err := a.Store.Close(); err != nil {
		slog.Error("Failed to close store", "error", err)
	}
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	waitForOllama(ctx, app.LLM, cfg.OllamaStartupTimeout)

	if err := app.Serve(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		return 1
	}
	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// ollamaRetryInterval is the pause between startup probes.
var ollamaRetryInterval = 3 * time.Second

// waitForOllama probes the backend until it answers or timeout passes. An
// unreachable backend is only a warning; chat requests report 503 until it is up.
func waitForOllama(ctx context.Context, provider llm.LLMProvider, timeout time.Duration) bool {
	slog.Info("Waiting for Ollama to be ready...")
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		if provider.CheckHealth(ctx) {
			slog.Info("Ollama is ready.")
			return true
		}
		select {
		case <-ctx.Done():
			slog.Warn("Ollama is not reachable, starting anyway", "timeout", timeout)
			return false
		case <-time.After(ollamaRetryInterval):
			slog.Debug("Ollama not ready yet, retrying...", "interval", ollamaRetryInterval)
		}
	}
}
