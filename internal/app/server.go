package app

import (
	"errors"
	"time"

	"gudang/internal/handlers"
	"gudang/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// NewServer builds the fiber application with all routes mounted.
func NewServer(c *Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "gudang",
		ErrorHandler: errorHandler(c.Log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(c.Log))

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group(c.Config.APIPrefix)
	handlers.NewAuthHandler(c.Auth, c.Tokens, c.Log).RegisterRoutes(api)
	handlers.NewProductHandler(c.Products, c.Tokens, c.Log).RegisterRoutes(api)

	return app
}

// errorHandler renders errors that escaped the handlers (unknown routes,
// recovered panics) in the same JSON shape as everything else.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}
		log.Error("unhandled error", zap.String("path", utils.CopyString(ctx.Path())), zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
