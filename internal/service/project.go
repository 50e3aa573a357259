package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"atelier/internal/config"
	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
	"atelier/internal/domain/services"
	policy "atelier/internal/service/auth"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// ListProjects returns the projects the viewer may see, narrowed by filters
func (s *projectService) ListProjects(ctx context.Context, viewer models.Identity, scope models.Scope, filters []models.ProjectFilter) ([]models.Project, error) {
	// Trashed and any-state listings are an explicit owner facility;
	// anonymous viewers always get the active set.
	if !viewer.Authenticated() {
		scope = models.ScopeActive
	}

	ownerID, visibility := policy.ListQuery(viewer)

	// The by filter references a user; a dangling id is a NotFound, not
	// an empty result.
	for _, f := range filters {
		if f.Kind == models.FilterByOwner {
			if _, err := s.userRepo.GetByID(ctx, f.OwnerID); err != nil {
				return nil, err
			}
		}
	}

	return s.projectRepo.List(ctx, repositories.ProjectQuery{
		OwnerID:    ownerID,
		Visibility: visibility,
		Scope:      scope,
		Filters:    filters,
	})
}

// CreateProject creates a new project owned by the viewer
func (s *projectService) CreateProject(ctx context.Context, viewer models.Identity, req *services.CreateProjectRequest) (*models.Project, error) {
	if !viewer.Authenticated() {
		return nil, fmt.Errorf("create project: %w", domain.ErrUnauthorized)
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	visibility := models.Visibility(req.Visibility)
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}

	now := time.Now()
	project := &models.Project{
		ID:          uuid.NewString(),
		OwnerID:     viewer.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Visibility:  visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"owner_id", project.OwnerID,
		"visibility", project.Visibility,
	)

	return project, nil
}

// GetProject retrieves a project the viewer is allowed to view
func (s *projectService) GetProject(ctx context.Context, viewer models.Identity, id string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id, models.ScopeActive)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(viewer, policy.ActionView, project); err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Members = members

	return project, nil
}

// UpdateProject updates a project's title and description
func (s *projectService) UpdateProject(ctx context.Context, viewer models.Identity, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id, models.ScopeActive)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(viewer, policy.ActionUpdate, project); err != nil {
		return nil, err
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, err
	}

	project.Title = strings.TrimSpace(req.Title)
	project.Description = strings.TrimSpace(req.Description)
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "id", project.ID, "owner_id", project.OwnerID)

	return project, nil
}

// ArchiveProject soft-deletes an active project
func (s *projectService) ArchiveProject(ctx context.Context, viewer models.Identity, id string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id, models.ScopeActive)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(viewer, policy.ActionArchive, project); err != nil {
		return nil, err
	}

	archived, err := s.projectRepo.Archive(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project archived", "id", id, "owner_id", project.OwnerID)

	return archived, nil
}

// RestoreProject clears the soft-delete marker on a trashed project.
// Restore is scoped to the trashed set: restoring an active project is
// a NotFound, not a no-op.
func (s *projectService) RestoreProject(ctx context.Context, viewer models.Identity, id string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id, models.ScopeTrashed)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(viewer, policy.ActionRestore, project); err != nil {
		return nil, err
	}

	restored, err := s.projectRepo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project restored", "id", id, "owner_id", project.OwnerID)

	return restored, nil
}

// DestroyProject permanently removes a project. Unlike restore it works
// from either lifecycle state: owners can hard-delete without archiving
// first.
func (s *projectService) DestroyProject(ctx context.Context, viewer models.Identity, id string) error {
	project, err := s.projectRepo.GetByID(ctx, id, models.ScopeAny)
	if err != nil {
		return err
	}

	if err := policy.Authorize(viewer, policy.ActionDestroy, project); err != nil {
		return err
	}

	if err := s.projectRepo.Destroy(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project destroyed", "id", id, "owner_id", project.OwnerID)

	return nil
}

// AddMember attaches an existing user to the project. Membership checks
// reuse the update policy: only the owner manages members.
func (s *projectService) AddMember(ctx context.Context, viewer models.Identity, projectID, userID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, models.ScopeActive)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(viewer, policy.ActionUpdate, project); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Attach and re-read the member set in one transaction so the
	// response reflects exactly what was committed.
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.projectRepo.AddMember(txCtx, projectID, user.ID); err != nil {
			return err
		}
		members, err := s.projectRepo.ListMembers(txCtx, projectID)
		if err != nil {
			return err
		}
		project.Members = members
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member added", "project_id", projectID, "user_id", user.ID)

	return project, nil
}

// RemoveMember detaches a user from the project
func (s *projectService) RemoveMember(ctx context.Context, viewer models.Identity, projectID, userID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, models.ScopeActive)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(viewer, policy.ActionUpdate, project); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.projectRepo.RemoveMember(txCtx, projectID, user.ID); err != nil {
			return err
		}
		members, err := s.projectRepo.ListMembers(txCtx, projectID)
		if err != nil {
			return err
		}
		project.Members = members
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member removed", "project_id", projectID, "user_id", user.ID)

	return project, nil
}

// validateCreateRequest validates a create project request
func (s *projectService) validateCreateRequest(req *services.CreateProjectRequest) error {
	return asValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(requireNonBlank),
		),
		validation.Field(&req.Description,
			validation.Required,
			validation.By(requireNonBlank),
		),
		validation.Field(&req.Visibility,
			validation.In(
				string(models.VisibilityPublic),
				string(models.VisibilityInternal),
				string(models.VisibilityPrivate),
			),
		),
	))
}

// validateUpdateRequest validates an update project request
func (s *projectService) validateUpdateRequest(req *services.UpdateProjectRequest) error {
	return asValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(requireNonBlank),
		),
		validation.Field(&req.Description,
			validation.Required,
			validation.By(requireNonBlank),
		),
	))
}

// requireNonBlank rejects values that are empty after trimming
func requireNonBlank(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(str) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}

// asValidationError converts ozzo's per-field error map into the domain
// validation error, preserving field names for the response body.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for name, ferr := range verrs {
			fields[name] = ferr.Error()
		}
		return &domain.ValidationError{Fields: fields}
	}

	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}
