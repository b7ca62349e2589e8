package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/travel-support-desk/internal/api/http/handlers"
	"github.com/spec-kit/travel-support-desk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Public         *handlers.PublicHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Post("/tickets", cfg.Tickets.CreateTicket)
	app.Get("/tickets", cfg.Tickets.ListTickets)
	app.Get("/tickets/:id", cfg.Tickets.GetTicket)
	app.Patch("/tickets/:id", cfg.Tickets.UpdateStatus)

	app.Get("/", cfg.Public.Home)
	app.Get("/submit", cfg.Public.SubmitForm)
	app.Post("/submit", cfg.Public.Submit)

	// Registered ahead of the guarded group so the session check never sees them.
	app.Get("/admin/login", cfg.Admin.LoginPage)
	app.Post("/admin/login", cfg.Admin.Login)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle)
	admin.Get("/", cfg.Admin.Dashboard)
	admin.Post("/logout", cfg.Admin.Logout)
	admin.Get("/tickets/:id", cfg.Admin.TicketDetail)
	admin.Post("/tickets/:id/toggle", cfg.Admin.ToggleStatus)
}
