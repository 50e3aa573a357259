package handler

import (
	"log/slog"
	"net/http"

	"atelier/internal/domain/models"
	"atelier/internal/domain/services"
	"atelier/internal/httputil"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService services.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// memberRequest is the body for member attach/detach
type memberRequest struct {
	ID string `json:"id"`
}

// ListProjects lists the projects the viewer may see
// GET /projects?by=<ownerID>&scope=<active|trashed|any>
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetIdentity(r)
	query := r.URL.Query()

	filters := models.ParseProjectFilters(query)
	scope := models.ParseScope(query.Get("scope"))

	projects, err := h.projectService.ListProjects(r.Context(), viewer, scope, filters)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// CreateProject creates a new project owned by the caller
// POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetIdentity(r)
	if !viewer.Authenticated() {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req services.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), viewer, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// GetProject retrieves a single project
// GET /projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetIdentity(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project id is required")
		return
	}

	project, err := h.projectService.GetProject(r.Context(), viewer, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// UpdateProject updates a project's title and description
// PATCH /projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetIdentity(r)
	if !viewer.Authenticated() {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project id is required")
		return
	}

	var req services.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), viewer, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// ArchiveProject soft-deletes a project
// DELETE /projects/{id}/archive
func (h *ProjectHandler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetIdentity(r)
	if !viewer.Authenticated() {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project id is required")
		return
	}

	project, err := h.projectService.ArchiveProject(r.Context(), viewer, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// RestoreProject clears the soft-delete marker on a trashed project
// PATCH /projects/{id}/restore
func (h *ProjectHandler) RestoreProject(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetIdentity(r)
	if !viewer.Authenticated() {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project id is required")
		return
	}

	project, err := h.projectService.RestoreProject(r.Context(), viewer, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DestroyProject permanently removes a project
// DELETE /projects/{id}
func (h *ProjectHandler) DestroyProject(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetIdentity(r)
	if !viewer.Authenticated() {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project id is required")
		return
	}

	if err := h.projectService.DestroyProject(r.Context(), viewer, id); err != nil {
		handleError(w, err)
		return
	}

	// Empty body on success
	w.WriteHeader(http.StatusOK)
}

// AddMember attaches a user to a project
// POST /projects/{id}/members
func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetIdentity(r)
	if !viewer.Authenticated() {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project id is required")
		return
	}

	var req memberRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projectService.AddMember(r.Context(), viewer, id, req.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// RemoveMember detaches a user from a project
// DELETE /projects/{id}/members
func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetIdentity(r)
	if !viewer.Authenticated() {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project id is required")
		return
	}

	var req memberRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projectService.RemoveMember(r.Context(), viewer, id, req.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}
