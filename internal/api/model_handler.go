package api

import (
	"log/slog"
	"net/http"

	"yanyu/backend/internal/interfaces"
	"yanyu/backend/internal/model"
	"yanyu/backend/internal/service"
)

// ModelsResponse wraps the local model catalog.
type ModelsResponse struct {
	Models []model.OllamaModel `json:"models"`
}

// PullFrame is one frame of the pull progress stream.
type PullFrame struct {
	Model    string  `json:"model,omitempty"`
	Progress float64 `json:"progress"`
	Done     bool    `json:"done,omitempty"`
}

// ModelHandler handles HTTP requests for model management.
type ModelHandler struct {
	service interfaces.ModelService
}

func NewModelHandler(svc interfaces.ModelService) *ModelHandler {
	return &ModelHandler{service: svc}
}

// HandleListModels godoc
// @Summary      List local models
// @Description  Gets a list of all models available locally in Ollama. The list is empty when Ollama is unreachable.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  ModelsResponse
// @Router       /models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ModelsResponse{Models: h.service.List(r.Context())})
}

// HandleModelAction godoc
// @Summary      Pull or delete a model
// @Description  `pull` starts a background download and returns immediately; `delete` removes the model.
// @Tags         Models
// @Accept       json
// @Produce      json
// @Param        actionRequest  body      service.ModelActionRequest  true  "Action and model name"
// @Success      200            {object}  StatusResponse
// @Failure      400            {object}  ErrorResponse
// @Failure      503            {object}  ErrorResponse
// @Failure      500            {object}  ErrorResponse
// @Router       /models [post]
func (h *ModelHandler) HandleModelAction(w http.ResponseWriter, r *http.Request) {
	var req service.ModelActionRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	status, err := h.service.Apply(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var message string
	switch req.Action {
	case service.ModelActionPull:
		message = "Started pulling model " + req.ModelName
	case service.ModelActionDelete:
		message = "Deleted model " + req.ModelName
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: status, Message: message})
}

// HandlePullModel godoc
// @Summary      Pull a model with progress
// @Description  Downloads a model and streams `{model, progress}` frames, ending with `{done: true}`.
// @Tags         Models
// @Accept       json
// @Produce      text/event-stream
// @Param        pullRequest  body      service.PullRequest  true  "Model name to pull"
// @Success      200          {object}  PullFrame "Stream of progress frames"
// @Failure      400          {object}  ErrorResponse
// @Router       /models/pull [post]
func (h *ModelHandler) HandlePullModel(w http.ResponseWriter, r *http.Request) {
	var req service.PullRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	if !startStream(w) {
		respondWithError(w, errStreamingUnsupported)
		return
	}

	var writeErr error
	err := h.service.Pull(r.Context(), req.Name, func(percent float64) {
		if writeErr == nil {
			writeErr = writeStreamEvent(w, PullFrame{Model: req.Name, Progress: percent})
		}
	})

	switch {
	case writeErr != nil, r.Context().Err() != nil:
		slog.Info("Client disconnected during model pull.", "model", req.Name)
	case err != nil:
		slog.Error("Error from model pull service", "model", req.Name, "error", err)
		sendStreamError(w, err)
	default:
		if err := writeStreamEvent(w, PullFrame{Model: req.Name, Progress: 100, Done: true}); err != nil {
			slog.Info("Client disconnected before pull completion was sent", "model", req.Name)
		}
		slog.Info("Finished streaming model pull.", "model", req.Name)
	}
}
