package repositories

import (
	"context"
	"sync"
	"time"

	"gudang/internal/models"
)

// MockRevocationRepository is an in-memory implementation of RevocationRepository.
type MockRevocationRepository struct {
	revoked map[string]models.RevokedToken
	mu      sync.RWMutex
}

// NewMockRevocationRepository creates a new instance of MockRevocationRepository.
func NewMockRevocationRepository() *MockRevocationRepository {
	return &MockRevocationRepository{
		revoked: make(map[string]models.RevokedToken),
	}
}

func (r *MockRevocationRepository) Revoke(_ context.Context, token *models.RevokedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.revoked[token.JTI]; !ok {
		r.revoked[token.JTI] = *token
	}
	return nil
}

func (r *MockRevocationRepository) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.revoked[jti]
	return ok, nil
}

func (r *MockRevocationRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for jti, t := range r.revoked {
		if t.ExpiresAt.Before(before) {
			delete(r.revoked, jti)
			n++
		}
	}
	return n, nil
}
