package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "yanyu/backend/internal/errors"
	"yanyu/backend/internal/llm"
	"yanyu/backend/internal/stream"
)

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by operations that don't produce a resource.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// errorStatus maps an error onto the HTTP status and the message shown to the client.
func errorStatus(err error) (int, string) {
	var statusErr *llm.StatusError
	switch {
	case errors.Is(err, app_errors.ErrValidation):
		// Validation messages are written for the caller already.
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, app_errors.ErrNotFound):
		return http.StatusNotFound, "The requested resource was not found."
	case errors.Is(err, app_errors.ErrBackendUnavailable):
		return http.StatusServiceUnavailable, "The inference backend is unavailable."
	case errors.As(err, &statusErr):
		return http.StatusInternalServerError, statusErr.Error()
	case errors.Is(err, app_errors.ErrBackendProtocol):
		return http.StatusInternalServerError, "The inference backend returned an unexpected response."
	case errors.Is(err, app_errors.ErrStoreNotInitialized):
		return http.StatusInternalServerError, "The local store is not initialized."
	default:
		// Implementation details stay in the log.
		return http.StatusInternalServerError, "An unexpected internal server error occurred."
	}
}

// respondWithError is the centralized error handling function for the API layer.
func respondWithError(w http.ResponseWriter, err error) {
	statusCode, message := errorStatus(err)
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)
	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// respondWithRawJSON writes an already encoded JSON document unchanged.
func respondWithRawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// startStream sends the SSE response headers. It fails when w cannot flush.
func startStream(w http.ResponseWriter) bool {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return true
}

// writeStreamEvent writes data as one `data:` frame and flushes it. A write error
// means the client has gone and is reported as app_errors.ErrStreamTerminated.
func writeStreamEvent(w http.ResponseWriter, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		// The connection is fine; only this frame is dropped.
		return nil
	}

	if err := stream.WriteEvent(w, stream.Event{Type: stream.EventTypeEvent, Data: string(jsonData)}); err != nil {
		return errors.Join(app_errors.ErrStreamTerminated, err)
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

var errStreamingUnsupported = fmt.Errorf("%w: response writer does not support streaming", app_errors.ErrInternal)

// sendStreamError reports err as the last frame of an open stream.
func sendStreamError(w http.ResponseWriter, err error) {
	_, message := errorStatus(err)
	slog.Warn("Sending stream error to client", "message", message, "internal_error", err)
	if werr := writeStreamEvent(w, ErrorResponse{Error: message}); werr != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", werr)
	}
}
