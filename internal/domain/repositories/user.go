package repositories

import (
	"context"

	"atelier/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id string) (*models.User, error)
}
