package handlers

import (
	"gudang/internal/middleware"
	"gudang/internal/services"
	"gudang/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	tokens      middleware.TokenResolver
	validate    *validation.Validator
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokens middleware.TokenResolver, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		validate:    validation.New(),
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Post("/logout", middleware.BearerRequired(), h.HandleLogout)
	router.Get("/user", middleware.AuthRequired(h.tokens, h.log), h.HandleMe)
}

// HandleRegister creates an account and returns it with a fresh token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}

	result, err := h.authService.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(result)
}

// HandleLogin exchanges email and password for a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, h.log, err)
	}

	result, err := h.authService.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(result)
}

// HandleLogout revokes the presented token.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.BearerToken(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "You are logged out."})
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}
