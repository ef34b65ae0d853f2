// Package server exposes the engine over HTTP: transaction CRUD,
// dry-run categorization, and the dashboard endpoint. Authentication is
// bearer-JWT only; token issuance belongs to the external identity
// provider.
package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pennywise-app/pennywise/internal/service"
)

// Deps bundles the services the HTTP layer depends on.
type Deps struct {
	Storage    service.Storage
	Classifier service.Classifier
	Learner    service.RuleLearner
	Dashboard  service.DashboardBuilder
	Logger     *slog.Logger
	JWTSecret  string
}

// New builds the fiber application with all routes registered.
func New(deps Deps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return errorResponse(c, code, "INTERNAL_ERROR", err.Error())
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(fiberlogger.New())

	h := &handlers{deps: deps}

	api := app.Group("/api", authMiddleware(deps.JWTSecret, deps.Logger))

	transactions := api.Group("/transactions")
	transactions.Get("", h.listTransactions)
	transactions.Post("", h.createTransaction)
	transactions.Post("/categorize", h.categorize)
	transactions.Put("/:id", h.updateTransaction)
	transactions.Delete("/:id", h.deleteTransaction)

	api.Get("/insights/dashboard", h.dashboard)

	return app
}

type handlers struct {
	deps Deps
}

// errorResponse writes the shared error envelope.
func errorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"error":   code,
			"message": message,
		},
	})
}

// dataResponse writes the shared success envelope.
func dataResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
