package services

import (
	"context"
	"fmt"

	"gudang/internal/apperrors"
	"gudang/internal/models"

	"go.uber.org/zap"
)

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// RegisterInput represents the request body for registration.
type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginInput represents the request body for login. The email format is not
// checked so that any unknown address fails like a wrong password.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService handles registration, login and logout. It holds no state of
// its own between requests.
type AuthService struct {
	credentials *CredentialStore
	tokens      *TokenService
	events      EventPublisher
	log         *zap.Logger
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(credentials *CredentialStore, tokens *TokenService, events EventPublisher, log *zap.Logger) *AuthService {
	return &AuthService{
		credentials: credentials,
		tokens:      tokens,
		events:      events,
		log:         log,
	}
}

// Register creates the account and logs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	verr := s.credentials.ValidateNewUser(in.Name, in.Email, in.Password)
	if in.Password != "" && in.Password != in.PasswordConfirmation {
		if verr == nil {
			verr = &apperrors.ValidationError{Fields: map[string]string{}}
		}
		verr.Fields["password"] = "The password field confirmation does not match."
	}
	if verr != nil {
		return nil, verr
	}

	user, err := s.credentials.CreateUser(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	publishEvent(s.events, s.log, EventUserRegistered, map[string]string{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return &AuthResult{User: user, Token: token}, nil
}

// Login checks the credentials and issues a fresh token. Unknown email and
// wrong password fail with the same apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.credentials.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Logout revokes the token. It succeeds for tokens that are already invalid.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Invalidate(ctx, token); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	return nil
}
