package services

import (
	"context"
	"fmt"
	"time"

	"gudang/internal/apperrors"
	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of an issued token when none is configured.
const DefaultTokenTTL = 60 * time.Minute

// TokenService issues HS256 bearer tokens and keeps a revocation list so that
// a logged out token stops resolving before it expires.
type TokenService struct {
	revocations repositories.RevocationRepository
	credentials *CredentialStore
	jwtSecret   []byte
	ttl         time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(revocations repositories.RevocationRepository, credentials *CredentialStore, jwtSecret string, ttl time.Duration) *TokenService {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		revocations: revocations,
		credentials: credentials,
		jwtSecret:   []byte(jwtSecret),
		ttl:         ttl,
	}
}

// Issue returns a new signed token bound to the user. Every call yields a
// token with its own id, so tokens of the same user are revoked independently.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Id:        uuid.New().String(),
		Subject:   user.ID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// Resolve maps a token to its user. Any token that is malformed, expired,
// revoked or bound to a user that no longer exists fails with
// apperrors.ErrInvalidToken.
func (s *TokenService) Resolve(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.parse(tokenString, true)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.Id)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("token has been revoked: %w", apperrors.ErrInvalidToken)
	}

	user, err := s.credentials.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("token subject no longer exists: %w", apperrors.ErrInvalidToken)
	}
	return user, nil
}

// Invalidate puts the token on the revocation list. It is idempotent, and a
// token that does not even parse is ignored since it can never resolve.
func (s *TokenService) Invalidate(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString, false)
	if err != nil {
		return nil
	}

	return s.revocations.Revoke(ctx, &models.RevokedToken{
		JTI:       claims.Id,
		UserID:    claims.Subject,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
		RevokedAt: time.Now(),
	})
}

// PurgeExpired drops revocation entries for tokens that have expired anyway.
func (s *TokenService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.revocations.DeleteExpired(ctx, time.Now())
}

// parse checks the signature and required claims. With validateClaims false
// an expired token is still accepted, which is what Invalidate needs.
func (s *TokenService) parse(tokenString string, validateClaims bool) (*jwt.StandardClaims, error) {
	parser := &jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: !validateClaims,
	}

	claims := &jwt.StandardClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Id == "" || claims.Subject == "" || claims.ExpiresAt == 0 {
		return nil, fmt.Errorf("%w: missing required claims", apperrors.ErrInvalidToken)
	}
	return claims, nil
}
