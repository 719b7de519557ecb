package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	app_errors "yanyu/backend/internal/errors"
	"yanyu/backend/internal/llm"
	"yanyu/backend/internal/model"
)

// Model actions accepted by the models route.
const (
	ModelActionPull   = "pull"
	ModelActionDelete = "delete"
)

// ModelActionRequest is the body of POST /api/models.
type ModelActionRequest struct {
	Action    string `json:"action" validate:"required" example:"pull"`
	ModelName string `json:"modelName" validate:"required" example:"llama3:8b"`
}

// PullRequest is the body of the streaming pull endpoint.
type PullRequest struct {
	Name string `json:"name" validate:"required" example:"llama3:8b"`
}

// ModelService handles the business logic for model management.
type ModelService struct {
	llm llm.LLMProvider

	// Background pulls outlive the request that started them and are bound to
	// this context instead.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewModelService creates a new ModelService.
func NewModelService(llmProvider llm.LLMProvider) *ModelService {
	ctx, cancel := context.WithCancel(context.Background())
	return &ModelService{llm: llmProvider, ctx: ctx, cancel: cancel}
}

// List returns a list of all locally available models. It never fails; an
// unreachable backend yields an empty list.
func (s *ModelService) List(ctx context.Context) []model.OllamaModel {
	return s.llm.ListModels(ctx)
}

// Pull downloads a model, reporting progress percentages to onProgress.
func (s *ModelService) Pull(ctx context.Context, name string, onProgress func(percent float64)) error {
	slog.Info("Pulling model", "model", name)
	if err := s.llm.PullModel(ctx, name, onProgress); err != nil {
		return fmt.Errorf("could not pull model %q: %w", name, err)
	}
	slog.Info("Model pulled", "model", name)
	return nil
}

// PullAsync starts a pull in the background and returns immediately.
func (s *ModelService) PullAsync(name string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.Pull(s.ctx, name, func(percent float64) {
			slog.Debug("Model pull progress", "model", name, "progress", percent)
		})
		if err != nil {
			slog.Error("Background model pull failed", "model", name, "error", err)
		}
	}()
}

// Delete removes a local model.
func (s *ModelService) Delete(ctx context.Context, name string) error {
	if err := s.llm.DeleteModel(ctx, name); err != nil {
		return fmt.Errorf("could not delete model %q: %w", name, err)
	}
	slog.Info("Model deleted", "model", name)
	return nil
}

// Apply runs a pull (in the background) or delete action and returns the status
// to report.
func (s *ModelService) Apply(ctx context.Context, req *ModelActionRequest) (string, error) {
	switch req.Action {
	case ModelActionPull:
		s.PullAsync(req.ModelName)
		return "started", nil
	case ModelActionDelete:
		if err := s.Delete(ctx, req.ModelName); err != nil {
			return "", err
		}
		return "deleted", nil
	default:
		return "", fmt.Errorf("%w: unknown action %q", app_errors.ErrValidation, req.Action)
	}
}

// Shutdown cancels background pulls and waits for them to return.
func (s *ModelService) Shutdown() {
	s.cancel()
	s.wg.Wait()
}
