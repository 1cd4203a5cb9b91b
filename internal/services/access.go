package services

import (
	"fmt"

	"gudang/internal/apperrors"
	"gudang/internal/models"
)

// Owned is implemented by any resource that belongs to a single user.
type Owned interface {
	OwnerID() *string
}

// AuthorizeModify allows a mutation only when user owns resource. A missing
// user, an ownerless resource and a different owner all fail with
// apperrors.ErrForbidden.
func AuthorizeModify(user *models.User, resource Owned) error {
	if user == nil {
		return fmt.Errorf("no authenticated user: %w", apperrors.ErrForbidden)
	}
	owner := resource.OwnerID()
	if owner == nil || *owner != user.ID {
		return fmt.Errorf("user %s does not own this resource: %w", user.ID, apperrors.ErrForbidden)
	}
	return nil
}
