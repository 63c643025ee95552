package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-helpdesk/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Tickets  *handlers.TicketsHandler
	Taxonomy *handlers.TaxonomyHandler
}

// RegisterRoutes wires HTTP routes. Static ticket paths (/all,
// /archive) must be registered before the :id routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	tickets := app.Group("/tickets")
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/all", cfg.Tickets.ListAllTickets)
	tickets.Post("/archive", cfg.Tickets.ArchiveTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", cfg.Tickets.DeleteTicket)

	if cfg.Taxonomy != nil {
		app.Get("/priority-levels", cfg.Taxonomy.ListPriorityLevels)
		departments := app.Group("/departments")
		departments.Get("/", cfg.Taxonomy.ListDepartments)
		departments.Get("/:name/sub-departments", cfg.Taxonomy.ListSubDepartments)
	}
}
