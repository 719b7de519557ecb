package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"yanyu/backend/internal/interfaces"
	"yanyu/backend/internal/service"
)

// ProjectHandler serves the local object store: projects, files, messages and stats.
type ProjectHandler struct {
	service interfaces.ProjectService
}

func NewProjectHandler(svc interfaces.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// HandleCreateProject godoc
// @Summary      Create a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Param        project  body      service.CreateProjectRequest  true  "Project"
// @Success      201      {object}  model.Project
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /projects [post]
func (h *ProjectHandler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProjectRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	project, err := h.service.CreateProject(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, project)
}

// HandleListProjects godoc
// @Summary      List projects
// @Tags         Projects
// @Produce      json
// @Success      200  {array}   model.Project
// @Failure      500  {object}  ErrorResponse
// @Router       /projects [get]
func (h *ProjectHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, projects)
}

// HandleSaveFile godoc
// @Summary      Save a file under a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Param        projectID  path      string                   true  "Project ID"
// @Param        file       body      service.SaveFileRequest  true  "File"
// @Success      201        {object}  model.File
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /projects/{projectID}/files [post]
func (h *ProjectHandler) HandleSaveFile(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	var req service.SaveFileRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	file, err := h.service.SaveFile(r.Context(), projectID, &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, file)
}

// HandleListFiles godoc
// @Summary      List the files of a project
// @Tags         Projects
// @Produce      json
// @Param        projectID  path      string  true  "Project ID"
// @Success      200        {array}   model.File
// @Failure      404        {object}  ErrorResponse
// @Router       /projects/{projectID}/files [get]
func (h *ProjectHandler) HandleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListFiles(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, files)
}

// HandleSaveMessage godoc
// @Summary      Save a chat message
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        message  body      service.SaveMessageRequest  true  "Message"
// @Success      201      {object}  model.ChatRecord
// @Failure      400      {object}  ErrorResponse
// @Router       /messages [post]
func (h *ProjectHandler) HandleSaveMessage(w http.ResponseWriter, r *http.Request) {
	var req service.SaveMessageRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	msg, err := h.service.SaveMessage(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, msg)
}

// HandleListMessages godoc
// @Summary      List chat messages
// @Description  Lists every stored message, or only those of one project.
// @Tags         Messages
// @Produce      json
// @Param        projectId  query     string  false  "Project ID"
// @Success      200        {array}   model.ChatRecord
// @Router       /messages [get]
func (h *ProjectHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	var projectID *string
	if id := r.URL.Query().Get("projectId"); id != "" {
		projectID = &id
	}
	messages, err := h.service.ListMessages(r.Context(), projectID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messages)
}

// HandleStats godoc
// @Summary      Store statistics
// @Tags         Projects
// @Produce      json
// @Success      200  {object}  model.Stats
// @Router       /stats [get]
func (h *ProjectHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
