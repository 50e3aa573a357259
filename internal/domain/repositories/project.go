package repositories

import (
	"context"

	"atelier/internal/domain/models"
)

// ProjectQuery describes a listing query. The zero value lists every
// active project; the service narrows it to what the viewer may see
// before it reaches the store.
type ProjectQuery struct {
	// OwnerID, when non-empty, restricts results to projects owned by
	// that user.
	OwnerID string

	// Visibility, when non-empty, restricts results to one tier.
	Visibility models.Visibility

	// Scope selects the lifecycle states covered (active by default).
	Scope models.Scope

	// Filters are the whitelisted caller-supplied filters, applied as
	// additional AND predicates on top of the fields above.
	Filters []models.ProjectFilter
}

// ProjectRepository defines data access operations for projects.
// Authorization happens above this layer; lookups are not owner-scoped.
type ProjectRepository interface {
	// Create inserts a new project and fills in its generated timestamps
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project within the given lifecycle scope
	GetByID(ctx context.Context, id string, scope models.Scope) (*models.Project, error)

	// List retrieves the projects matching the query, newest first
	List(ctx context.Context, q ProjectQuery) ([]models.Project, error)

	// Update persists a project's title, description and updated_at
	Update(ctx context.Context, project *models.Project) error

	// Archive soft-deletes an active project and returns it with
	// deleted_at set
	Archive(ctx context.Context, id string) (*models.Project, error)

	// Restore clears deleted_at on a trashed project and returns it
	Restore(ctx context.Context, id string) (*models.Project, error)

	// Destroy permanently removes a project and its memberships,
	// regardless of lifecycle state
	Destroy(ctx context.Context, id string) error

	// AddMember attaches a user to the project. Attaching an existing
	// member is a no-op.
	AddMember(ctx context.Context, projectID, userID string) error

	// RemoveMember detaches a user from the project
	RemoveMember(ctx context.Context, projectID, userID string) error

	// ListMembers returns the ids of the project's members
	ListMembers(ctx context.Context, projectID string) ([]string, error)
}
