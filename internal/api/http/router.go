package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/http/handlers"
	"github.com/spec-kit/lead-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Leads          *handlers.LeadsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every lead and dashboard route sits
// behind the session gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/signin", cfg.Auth.SignIn)
	authGroup.Post("/signout", cfg.AuthMiddleware.Handle, cfg.Auth.SignOut)

	leads := app.Group("/leads", cfg.AuthMiddleware.Handle)
	leads.Get("", cfg.Leads.ListLeads)
	leads.Post("", cfg.Leads.CreateLead)
	leads.Get("/:id", cfg.Leads.GetLead)
	leads.Patch("/:id", cfg.Leads.UpdateLead)
	leads.Delete("/:id", cfg.Leads.DeleteLead)
	leads.Get("/:id/notes", cfg.Leads.ListNotes)
	leads.Post("/:id/notes", cfg.Leads.AddNote)

	dashboard := app.Group("/dashboard", cfg.AuthMiddleware.Handle)
	dashboard.Get("/stats", cfg.Dashboard.Stats)
}
