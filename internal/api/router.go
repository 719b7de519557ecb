package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "yanyu/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Chat        *ChatHandler
	Completions *CompletionHandler
	Models      *ModelHandler
	Projects    *ProjectHandler
	ChatLimiter *RateLimiter
}

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness of this process only; backend health is GET /api/ollama/chat.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/ollama/chat", h.Chat.HandleHealth)

			r.Get("/models", h.Models.HandleListModels)
			r.Post("/models", h.Models.HandleModelAction)

			r.Post("/projects", h.Projects.HandleCreateProject)
			r.Get("/projects", h.Projects.HandleListProjects)
			r.Post("/projects/{projectID}/files", h.Projects.HandleSaveFile)
			r.Get("/projects/{projectID}/files", h.Projects.HandleListFiles)
			r.Post("/messages", h.Projects.HandleSaveMessage)
			r.Get("/messages", h.Projects.HandleListMessages)
			r.Get("/stats", h.Projects.HandleStats)
		})

		// Streaming routes hold the connection open and must NOT have a timeout.
		r.Group(func(r chi.Router) {
			r.Use(h.ChatLimiter.Middleware)

			r.Post("/ollama/chat", h.Chat.HandleChat)
			r.Post("/ai/completions", h.Completions.HandleCompletions)
		})
		r.Post("/models/pull", h.Models.HandlePullModel)
	})

	return r
}
