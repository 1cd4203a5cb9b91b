package middleware

import (
	"context"
	"errors"
	"strings"

	"gudang/internal/apperrors"
	"gudang/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	localUser  = "user"
	localToken = "token"
)

// TokenResolver maps a bearer token to the user it was issued to.
// *services.TokenService satisfies it.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired rejects the request with 401 unless it carries a bearer token
// that resolves to a user. The user and the raw token are stored in the
// request locals; read them with CurrentUser and BearerToken.
func AuthRequired(tokens TokenResolver, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, problem := bearerFromHeader(c)
		if problem != "" {
			return unauthorized(c, problem)
		}

		user, err := tokens.Resolve(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidToken) {
				log.Debug("token rejected", zap.Error(err))
				return unauthorized(c, "Invalid or expired token")
			}
			log.Error("token resolution failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not authenticate request",
			})
		}

		c.Locals(localUser, user)
		c.Locals(localToken, tokenString)
		return c.Next()
	}
}

// BearerRequired only checks that a bearer token is present and stores it,
// without resolving it. Logout uses this so that an already invalid token
// can still be logged out.
func BearerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, problem := bearerFromHeader(c)
		if problem != "" {
			return unauthorized(c, problem)
		}
		c.Locals(localToken, tokenString)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

// BearerToken returns the raw token stored by AuthRequired or BearerRequired.
func BearerToken(c *fiber.Ctx) string {
	token, _ := c.Locals(localToken).(string)
	return token
}

// ExtractBearer returns the token of an "Authorization: Bearer <token>"
// header value, or "" when the value has another shape.
func ExtractBearer(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// bearerFromHeader returns the token, or a message for the client when the
// header is missing or malformed.
func bearerFromHeader(c *fiber.Ctx) (token, problem string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", "Authorization header is required"
	}
	token = ExtractBearer(authHeader)
	if token == "" {
		return "", "Authorization header format must be 'Bearer <token>'"
	}
	return token, ""
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
	})
}
