package auth

import (
	"fmt"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
)

// Action is a policy-checked operation on a project.
type Action string

const (
	ActionView    Action = "view"
	ActionUpdate  Action = "update"
	ActionArchive Action = "archive"
	ActionRestore Action = "restore"
	ActionDestroy Action = "destroy"
)

// Authorize decides whether the viewer may perform the action on the
// project. It is a pure predicate over the viewer identity and the
// project's owner and visibility - no I/O - so every mutating operation
// can call it uniformly before touching the store.
//
// view: allowed for public projects, and for the owner regardless of
// tier. Internal and private projects are Forbidden to everyone else,
// anonymous viewers included.
//
// update/archive/restore/destroy: owner only. Anonymous callers get
// Unauthorized, authenticated non-owners get Forbidden.
func Authorize(viewer models.Identity, action Action, project *models.Project) error {
	switch action {
	case ActionView:
		if project.Visibility == models.VisibilityPublic {
			return nil
		}
		if viewer.Authenticated() && viewer.UserID == project.OwnerID {
			return nil
		}
		return fmt.Errorf("view project %s: %w", project.ID, domain.ErrForbidden)

	case ActionUpdate, ActionArchive, ActionRestore, ActionDestroy:
		if !viewer.Authenticated() {
			return fmt.Errorf("%s project %s: %w", action, project.ID, domain.ErrUnauthorized)
		}
		if viewer.UserID != project.OwnerID {
			return fmt.Errorf("%s project %s: %w", action, project.ID, domain.ErrForbidden)
		}
		return nil

	default:
		return fmt.Errorf("%s project %s: %w", action, project.ID, domain.ErrForbidden)
	}
}

// ListQuery returns the base listing restriction for the viewer: owned
// projects for authenticated viewers, public projects for anonymous
// ones. Caller-supplied filters narrow this base, never widen it.
func ListQuery(viewer models.Identity) (ownerID string, visibility models.Visibility) {
	if viewer.Authenticated() {
		return viewer.UserID, ""
	}
	return "", models.VisibilityPublic
}
