package repositories

import (
	"context"

	"gudang/internal/models"
)

// UserRepository defines the interface for user data access.
// GetByEmail and GetByID return an error wrapping apperrors.ErrNotFound when
// no row matches; Create returns one wrapping apperrors.ErrConflict when the
// email is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
