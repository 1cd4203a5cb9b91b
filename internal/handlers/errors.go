package handlers

import (
	"bytes"
	"errors"

	"gudang/internal/apperrors"
	"gudang/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const msgInvalidCredentials = "The provided credentials are incorrect."

// respondError maps a service error onto the HTTP status and JSON body the
// API promises. Anything unrecognised is logged and hidden behind a 500.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	if verr, ok := apperrors.IsValidation(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return message(c, fiber.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, apperrors.ErrInvalidToken), errors.Is(err, apperrors.ErrUnauthenticated):
		return message(c, fiber.StatusUnauthorized, "Unauthenticated.")
	case errors.Is(err, apperrors.ErrForbidden):
		return message(c, fiber.StatusForbidden, "This action is unauthorized.")
	case errors.Is(err, apperrors.ErrNotFound):
		return message(c, fiber.StatusNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrConflict):
		return message(c, fiber.StatusConflict, "The email has already been taken.")
	}

	log.Error("request failed",
		zap.String("method", utils.CopyString(c.Method())),
		zap.String("path", utils.CopyString(c.Path())),
		zap.Error(err),
	)
	return message(c, fiber.StatusInternalServerError, "Internal server error")
}

// parseBody decodes the JSON body into out. An empty body leaves out zeroed so
// that field validation reports what is missing; a body that does not decode
// is a *apperrors.ValidationError.
func parseBody(c *fiber.Ctx, out any) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return validation.FromDecodeError(err)
	}
	return nil
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
