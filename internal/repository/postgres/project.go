package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const projectColumns = "id, owner_id, title, description, visibility, created_at, updated_at, deleted_at"

// scopeCondition maps a lifecycle scope onto its WHERE predicate
func scopeCondition(scope models.Scope) string {
	switch scope {
	case models.ScopeTrashed:
		return "deleted_at IS NOT NULL"
	case models.ScopeAny:
		return "TRUE"
	default:
		return "deleted_at IS NULL"
	}
}

func scanProject(row interface{ Scan(...interface{}) error }, p *models.Project) error {
	return row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.Visibility,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
}

// Create inserts a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, title, description, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.ID,
		project.OwnerID,
		project.Title,
		project.Description,
		project.Visibility,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("owner %s: %w", project.OwnerID, domain.ErrNotFound)
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project within the given lifecycle scope
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string, scope models.Scope) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND %s
	`, projectColumns, r.tables.Projects, scopeCondition(scope))

	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	err := scanProject(executor.QueryRow(ctx, query, id), &project)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// List retrieves the projects matching the query, most recently updated first
func (r *PostgresProjectRepository) List(ctx context.Context, q repositories.ProjectQuery) ([]models.Project, error) {
	conditions := []string{scopeCondition(q.Scope)}
	var args []interface{}

	if q.OwnerID != "" {
		args = append(args, q.OwnerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if q.Visibility != "" {
		args = append(args, q.Visibility)
		conditions = append(conditions, fmt.Sprintf("visibility = $%d", len(args)))
	}

	// Caller-supplied filters narrow the base restriction with AND
	for _, f := range q.Filters {
		switch f.Kind {
		case models.FilterByOwner:
			args = append(args, f.OwnerID)
			conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
		}
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY updated_at DESC
	`, projectColumns, r.tables.Projects, strings.Join(conditions, " AND "))

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		if err := scanProject(rows, &project); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	// Return empty slice instead of nil if no projects
	if projects == nil {
		projects = []models.Project{}
	}

	return projects, nil
}

// Update updates a project's title, description and updated_at timestamp
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		project.Title,
		project.Description,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Archive soft-deletes an active project by setting its deleted_at timestamp
func (r *PostgresProjectRepository) Archive(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING %s
	`, r.tables.Projects, projectColumns)

	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	err := scanProject(executor.QueryRow(ctx, query, id), &project)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("archive project: %w", err)
	}

	return &project, nil
}

// Restore clears deleted_at on a trashed project
func (r *PostgresProjectRepository) Restore(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NOT NULL
		RETURNING %s
	`, r.tables.Projects, projectColumns)

	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	err := scanProject(executor.QueryRow(ctx, query, id), &project)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("restore project: %w", err)
	}

	return &project, nil
}

// Destroy permanently removes a project. Memberships go with it via the
// join table's ON DELETE CASCADE.
func (r *PostgresProjectRepository) Destroy(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("destroy project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AddMember attaches a user to the project. Re-attaching an existing
// member is a no-op rather than an error.
func (r *PostgresProjectRepository) AddMember(ctx context.Context, projectID, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, user_id) DO NOTHING
	`, r.tables.ProjectUser)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID, userID); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
		}
		return fmt.Errorf("add member: %w", err)
	}

	return nil
}

// RemoveMember detaches a user from the project. Detaching a user who is
// not a member is a no-op.
func (r *PostgresProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE project_id = $1 AND user_id = $2
	`, r.tables.ProjectUser)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID, userID); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}

	return nil
}

// ListMembers returns the ids of the project's members
func (r *PostgresProjectRepository) ListMembers(ctx context.Context, projectID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT user_id
		FROM %s
		WHERE project_id = $1
		ORDER BY user_id
	`, r.tables.ProjectUser)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	return members, nil
}
