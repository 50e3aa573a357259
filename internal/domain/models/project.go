package models

import (
	"time"
)

// Visibility controls who may see a project.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityInternal Visibility = "internal"
	VisibilityPrivate  Visibility = "private"
)

// Valid reports whether v is one of the three recognized tiers.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityInternal, VisibilityPrivate:
		return true
	}
	return false
}

// Project is a user-owned project. OwnerID and Visibility are set at
// creation and never change; DeletedAt is the soft-delete marker
// (nil means active).
type Project struct {
	ID          string     `json:"id" db:"id"`
	OwnerID     string     `json:"owner_id" db:"owner_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Visibility  Visibility `json:"visibility" db:"visibility"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`

	// Members holds the ids of users attached via the project_user join.
	// Populated on show and membership operations, omitted elsewhere.
	Members []string `json:"members,omitempty" db:"-"`
}

// Archived reports whether the project is soft-deleted.
func (p *Project) Archived() bool {
	return p.DeletedAt != nil
}
