package services

import (
	"context"

	"atelier/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project.
// Visibility is optional and defaults to private; it cannot be changed
// after creation.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProjectService defines the project resource operations. Every
// operation resolves what the viewer may do before touching the store.
type ProjectService interface {
	// ListProjects returns the projects the viewer may see, narrowed by
	// the whitelisted filters. Authenticated viewers see the projects
	// they own; anonymous viewers see public projects only.
	ListProjects(ctx context.Context, viewer models.Identity, scope models.Scope, filters []models.ProjectFilter) ([]models.Project, error)

	// CreateProject creates a new project owned by the viewer
	CreateProject(ctx context.Context, viewer models.Identity, req *CreateProjectRequest) (*models.Project, error)

	// GetProject retrieves a project the viewer is allowed to view
	GetProject(ctx context.Context, viewer models.Identity, id string) (*models.Project, error)

	// UpdateProject updates a project's title and description
	UpdateProject(ctx context.Context, viewer models.Identity, id string, req *UpdateProjectRequest) (*models.Project, error)

	// ArchiveProject soft-deletes an active project
	ArchiveProject(ctx context.Context, viewer models.Identity, id string) (*models.Project, error)

	// RestoreProject clears the soft-delete marker on a trashed project
	RestoreProject(ctx context.Context, viewer models.Identity, id string) (*models.Project, error)

	// DestroyProject permanently removes a project
	DestroyProject(ctx context.Context, viewer models.Identity, id string) error

	// AddMember attaches an existing user to the project
	AddMember(ctx context.Context, viewer models.Identity, projectID, userID string) (*models.Project, error)

	// RemoveMember detaches a user from the project
	RemoveMember(ctx context.Context, viewer models.Identity, projectID, userID string) (*models.Project, error)
}
