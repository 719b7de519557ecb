package service

import (
	"context"
	"errors"
	"fmt"

	app_errors "yanyu/backend/internal/errors"
	"yanyu/backend/internal/model"
	"yanyu/backend/internal/repository"
)

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name        string   `json:"name" validate:"required,max=200" example:"My project"`
	Description string   `json:"description" validate:"max=2000"`
	Files       []string `json:"files"`
}

// SaveFileRequest is the body of POST /api/projects/{projectID}/files.
type SaveFileRequest struct {
	Name    string `json:"name" validate:"required" example:"main.go"`
	Content string `json:"content"`
	Type    string `json:"type" example:"text/x-go"`
	Size    int64  `json:"size" validate:"gte=0"`
}

// SaveMessageRequest is the body of POST /api/messages. Content may be empty but
// must be present.
type SaveMessageRequest struct {
	Content   *string `json:"content" validate:"required"`
	Role      string  `json:"role" validate:"required,oneof=user assistant system" example:"user"`
	ProjectID *string `json:"projectId,omitempty"`
}

// ProjectService exposes the local object store.
type ProjectService struct {
	repo repository.Repository
}

func NewProjectService(repo repository.Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) CreateProject(ctx context.Context, req *CreateProjectRequest) (*model.Project, error) {
	return s.repo.CreateProject(ctx, &model.Project{
		Name:        req.Name,
		Description: req.Description,
		Files:       req.Files,
	})
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.repo.GetProjects(ctx)
}

// SaveFile stores a file under an existing project.
func (s *ProjectService) SaveFile(ctx context.Context, projectID string, req *SaveFileRequest) (*model.File, error) {
	if err := s.ensureProject(ctx, projectID); err != nil {
		return nil, err
	}
	size := req.Size
	if size == 0 {
		size = int64(len(req.Content))
	}
	return s.repo.SaveFile(ctx, &model.File{
		Name:      req.Name,
		Content:   req.Content,
		Type:      req.Type,
		Size:      size,
		ProjectID: projectID,
	})
}

func (s *ProjectService) ListFiles(ctx context.Context, projectID string) ([]model.File, error) {
	if err := s.ensureProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.GetFilesByProject(ctx, projectID)
}

func (s *ProjectService) SaveMessage(ctx context.Context, req *SaveMessageRequest) (*model.ChatRecord, error) {
	var content string
	if req.Content != nil {
		content = *req.Content
	}
	return s.repo.SaveChatMessage(ctx, &model.ChatRecord{
		Content:   content,
		Role:      req.Role,
		ProjectID: req.ProjectID,
	})
}

// ListMessages returns every message, or those of one project when projectID is set.
func (s *ProjectService) ListMessages(ctx context.Context, projectID *string) ([]model.ChatRecord, error) {
	return s.repo.GetChatMessages(ctx, projectID)
}

func (s *ProjectService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.repo.GetStats(ctx)
}

func (s *ProjectService) ensureProject(ctx context.Context, projectID string) error {
	_, err := s.repo.GetProject(ctx, projectID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: project %s", app_errors.ErrNotFound, projectID)
	}
	return err
}
