package api

import (
	"fmt"
	"log/slog"
	"net/http"

	app_errors "yanyu/backend/internal/errors"
	"yanyu/backend/internal/interfaces"
	"yanyu/backend/internal/model"
	"yanyu/backend/internal/service"
)

// CompletionHandler relays streamed completions from a third-party endpoint.
type CompletionHandler struct {
	service interfaces.CompletionService
}

func NewCompletionHandler(svc interfaces.CompletionService) *CompletionHandler {
	return &CompletionHandler{service: svc}
}

// HandleCompletions godoc
// @Summary      Stream a third-party completion
// @Description  Streams an OpenAI-compatible completion as SSE `{token}` frames followed by `{done: true, completion}`.
// @Tags         AI
// @Accept       json
// @Produce      text/event-stream
// @Param        completionRequest  body      service.CompletionRequest  true  "Messages and sampling options"
// @Success      200                {object}  model.CompletionFrame
// @Failure      400                {object}  ErrorResponse
// @Failure      503                {object}  ErrorResponse
// @Router       /ai/completions [post]
func (h *CompletionHandler) HandleCompletions(w http.ResponseWriter, r *http.Request) {
	if !h.service.Enabled() {
		respondWithError(w, fmt.Errorf("%w: COMPLETIONS_URL is not set", app_errors.ErrBackendUnavailable))
		return
	}

	var req service.CompletionRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	if !startStream(w) {
		respondWithError(w, errStreamingUnsupported)
		return
	}

	// Tokens can't stop the upstream read; once a write fails the rest are dropped
	// and the cancelled request context ends the upstream request.
	var writeErr error
	completion, err := h.service.Stream(r.Context(), &req, func(token string) {
		if writeErr == nil {
			writeErr = writeStreamEvent(w, model.CompletionFrame{Token: token})
		}
	})

	switch {
	case writeErr != nil, r.Context().Err() != nil:
		slog.Info("Client disconnected during completion stream")
	case err != nil:
		slog.Error("Completion stream failed", "error", err)
		sendStreamError(w, err)
	default:
		if err := writeStreamEvent(w, model.CompletionFrame{Done: true, Completion: completion}); err != nil {
			slog.Info("Client disconnected before completion was sent", "error", err)
		}
	}
}
