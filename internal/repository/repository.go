package repository

import (
	"context"

	"yanyu/backend/internal/model"
)

// Repository is the local object store: projects, their files and chat messages.
// Every method fails with app_errors.ErrStoreNotInitialized until Init has run.
type Repository interface {
	Init(ctx context.Context) error
	Close() error

	CreateProject(ctx context.Context, project *model.Project) (*model.Project, error)
	GetProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, projectID string) (*model.Project, error)

	SaveFile(ctx context.Context, file *model.File) (*model.File, error)
	GetFilesByProject(ctx context.Context, projectID string) ([]model.File, error)

	SaveChatMessage(ctx context.Context, message *model.ChatRecord) (*model.ChatRecord, error)
	GetChatMessages(ctx context.Context, projectID *string) ([]model.ChatRecord, error)

	GetStats(ctx context.Context) (*model.Stats, error)
}
