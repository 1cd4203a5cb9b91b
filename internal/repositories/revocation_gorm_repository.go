package repositories

import (
	"context"
	"fmt"
	"time"

	"gudang/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRevocationRepository is a GORM implementation of RevocationRepository.
type GORMRevocationRepository struct {
	db *gorm.DB
}

// NewGORMRevocationRepository creates a new instance of GORMRevocationRepository.
func NewGORMRevocationRepository(db *gorm.DB) *GORMRevocationRepository {
	return &GORMRevocationRepository{
		db: db,
	}
}

// Revoke inserts the JTI into the revocation list. Concurrent or repeated
// revocations of the same JTI collapse into a single row.
func (r *GORMRevocationRepository) Revoke(ctx context.Context, token *models.RevokedToken) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "jti"}}, DoNothing: true}).
		Create(token).Error
	if err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", token.JTI, err)
	}
	return nil
}

// IsRevoked reports whether the JTI is on the revocation list.
func (r *GORMRevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up revoked token %s: %w", jti, err)
	}
	return count > 0, nil
}

// DeleteExpired removes entries whose token expired before the given time.
func (r *GORMRevocationRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.RevokedToken{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge revoked tokens: %w", res.Error)
	}
	return res.RowsAffected, nil
}
