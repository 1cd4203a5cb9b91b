package repositories

import (
	"context"
	"time"

	"gudang/internal/models"
)

// RevocationRepository stores the token revocation list.
// Revoke must be idempotent: revoking an already revoked JTI is not an error.
type RevocationRepository interface {
	Revoke(ctx context.Context, token *models.RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
