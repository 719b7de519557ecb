package api

import (
	"errors"
	"log/slog"
	"net/http"

	app_errors "yanyu/backend/internal/errors"
	"yanyu/backend/internal/interfaces"
	"yanyu/backend/internal/model"
	"yanyu/backend/internal/service"
)

// Health statuses reported by the chat health check.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
	HealthStatusError     = "error"
)

// ChatHandler relays chat requests to the inference backend.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// HandleChat godoc
// @Summary      Chat with a local model
// @Description  Validates the request and relays it to Ollama. With `stream: true` the reply is an SSE stream of `data: <chunk>` frames ending with a `done: true` chunk; a failure mid-stream is sent as a final `data: {"error": ...}` frame.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Produce      text/event-stream
// @Param        chatRequest  body      service.ChatRequest  true  "Model, messages and options"
// @Success      200          {object}  model.StreamChunk
// @Failure      400          {object}  ErrorResponse
// @Failure      503          {object}  ErrorResponse
// @Failure      500          {object}  ErrorResponse
// @Router       /ollama/chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	if !req.Stream {
		reply, err := h.service.Complete(r.Context(), &req)
		if err != nil {
			respondWithError(w, err)
			return
		}
		if len(reply.Raw) > 0 {
			respondWithRawJSON(w, http.StatusOK, reply.Raw)
			return
		}
		respondWithJSON(w, http.StatusOK, reply)
		return
	}

	h.relay(w, r, &req)
}

// relay writes every backend chunk as its own frame before the next one is read.
func (h *ChatHandler) relay(w http.ResponseWriter, r *http.Request, req *service.ChatRequest) {
	if !startStream(w) {
		respondWithError(w, errStreamingUnsupported)
		return
	}

	frames := 0
	err := h.service.Stream(r.Context(), req, func(chunk model.StreamChunk) error {
		frames++
		return writeStreamEvent(w, chunk)
	})

	switch {
	case err == nil:
		slog.Info("Finished relaying chat stream", "model", req.Model, "frames", frames)
	case errors.Is(err, app_errors.ErrStreamTerminated), r.Context().Err() != nil:
		slog.Info("Client disconnected during chat stream", "model", req.Model, "frames", frames)
	default:
		slog.Error("Chat stream failed", "model", req.Model, "frames", frames, "error", err)
		sendStreamError(w, err)
	}
}

// HandleHealth godoc
// @Summary      Inference backend health
// @Description  Reports whether Ollama is reachable.
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  StatusResponse
// @Failure      500  {object}  StatusResponse
// @Router       /ollama/chat [get]
func (h *ChatHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthy, err := h.service.Health(r.Context())
	switch {
	case err != nil:
		slog.Warn("Health check failed", "error", err)
		respondWithJSON(w, http.StatusInternalServerError, StatusResponse{Status: HealthStatusError, Message: "Health check failed"})
	case !healthy:
		respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: HealthStatusUnhealthy, Message: "Ollama service is unavailable"})
	default:
		respondWithJSON(w, http.StatusOK, StatusResponse{Status: HealthStatusHealthy, Message: "Ollama service is running"})
	}
}
