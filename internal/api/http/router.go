package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/czegarraro/backend/internal/api/http/handlers"
	"github.com/czegarraro/backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Problems       *handlers.ProblemsHandler
	Filters        *handlers.FiltersHandler
	Analytics      *handlers.AnalyticsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes under /api/v1.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api/v1")

	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	// Identity is optional on the triage surface: it only sets the default
	// comment author name.
	problems := api.Group("/problems", cfg.AuthMiddleware.Optional)
	problems.Get("/", cfg.Problems.ListProblems)
	problems.Get("/:problemId", cfg.Problems.GetProblem)
	problems.Patch("/:problemId/status", cfg.Problems.UpdateStatus)
	problems.Post("/:problemId/comments", cfg.Problems.AddComment)

	api.Get("/filters/options", cfg.Filters.GetFilterOptions)
	api.Get("/analytics/summary", cfg.Analytics.Summary)
}
