package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supervisor-console/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Queue   *handlers.QueueHandler
	History *handlers.HistoryHandler
	Notices *handlers.NoticesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	queueGroup := app.Group("/queue")
	queueGroup.Get("/pending", cfg.Queue.GetPending)
	queueGroup.Post("/pending/refresh", cfg.Queue.RefreshPending)
	queueGroup.Put("/requests/:id/draft", cfg.Queue.UpdateDraft)
	queueGroup.Post("/requests/:id/answer", cfg.Queue.SubmitAnswer)
	queueGroup.Get("/resolved", cfg.History.GetResolved)
	queueGroup.Post("/resolved/refresh", cfg.History.RefreshResolved)

	app.Get("/notices", cfg.Notices.List)
	app.Delete("/notices/:id", cfg.Notices.Dismiss)
}
