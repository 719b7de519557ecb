package interfaces

import (
	"context"

	"yanyu/backend/internal/model"
	"yanyu/backend/internal/service"
)

// The API layer depends on these interfaces rather than on the concrete services,
// so handlers can be tested against mocks.

// ChatService relays chat requests to the inference backend.
type ChatService interface {
	Health(ctx context.Context) (bool, error)
	Complete(ctx context.Context, req *service.ChatRequest) (*model.StreamChunk, error)
	Stream(ctx context.Context, req *service.ChatRequest, fn func(model.StreamChunk) error) error
}

// CompletionService streams third-party completions.
type CompletionService interface {
	Enabled() bool
	Stream(ctx context.Context, req *service.CompletionRequest, onToken func(token string)) (string, error)
}

// ModelService defines the contract for model management logic.
type ModelService interface {
	List(ctx context.Context) []model.OllamaModel
	Pull(ctx context.Context, name string, onProgress func(percent float64)) error
	Apply(ctx context.Context, req *service.ModelActionRequest) (string, error)
}

// ProjectService exposes the local object store.
type ProjectService interface {
	CreateProject(ctx context.Context, req *service.CreateProjectRequest) (*model.Project, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	SaveFile(ctx context.Context, projectID string, req *service.SaveFileRequest) (*model.File, error)
	ListFiles(ctx context.Context, projectID string) ([]model.File, error)
	SaveMessage(ctx context.Context, req *service.SaveMessageRequest) (*model.ChatRecord, error)
	ListMessages(ctx context.Context, projectID *string) ([]model.ChatRecord, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

var (
	_ ChatService       = (*service.ChatService)(nil)
	_ CompletionService = (*service.CompletionService)(nil)
	_ ModelService      = (*service.ModelService)(nil)
	_ ProjectService    = (*service.ProjectService)(nil)
)
