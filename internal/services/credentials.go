package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gudang/internal/apperrors"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// newUserFields carries the constraints a new account must satisfy.
type newUserFields struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// CredentialStore persists users and checks their passwords.
type CredentialStore struct {
	users      repositories.UserRepository
	validator  *validation.Validator
	bcryptCost int
}

// NewCredentialStore creates a new CredentialStore. A bcryptCost outside the
// range bcrypt accepts falls back to bcrypt.DefaultCost.
func NewCredentialStore(users repositories.UserRepository, bcryptCost int) *CredentialStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &CredentialStore{
		users:      users,
		validator:  validation.New(),
		bcryptCost: bcryptCost,
	}
}

// ValidateNewUser checks the field constraints of a new account without
// touching the store. It returns nil when the fields are acceptable.
func (s *CredentialStore) ValidateNewUser(name, email, password string) *apperrors.ValidationError {
	return s.validator.Fields(newUserFields{Name: name, Email: normalizeEmail(email), Password: password})
}

// CreateUser validates the fields, hashes the password and saves the user.
// The email is stored lower-cased, so uniqueness ignores case.
// It fails with a *apperrors.ValidationError or apperrors.ErrConflict.
func (s *CredentialStore) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if verr := s.ValidateNewUser(name, email, password); verr != nil {
		return nil, verr
	}

	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email '%s' already registered: %w", email, apperrors.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError("password", "The password field must not be greater than 72 bytes.")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}
	// The unique index still catches a concurrent registration that passed the check above.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// FindByEmail returns the user with the given email, or nil when there is none.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByID returns the user with the given id, or nil when there is none.
func (s *CredentialStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyPassword reports whether password matches the stored hash.
func (s *CredentialStore) VerifyPassword(user *models.User, password string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
