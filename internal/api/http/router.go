package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/delfood/owner-service/internal/api/http/handlers"
	"github.com/delfood/owner-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Owners      *handlers.OwnersHandler
	MenuGroups  *handlers.MenuGroupsHandler
	SessionGate *auth.SessionGate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	owners := app.Group("/owners")
	owners.Post("/", cfg.Owners.SignUp)
	owners.Get("/id-check/:id", cfg.Owners.IDCheck)
	owners.Post("/login", cfg.Owners.Login)

	protected := owners.Group("", cfg.SessionGate.Handle)
	protected.Get("/logout", cfg.Owners.Logout)
	protected.Get("/my-info", cfg.Owners.MyInfo)
	protected.Patch("/", cfg.Owners.UpdateContact)
	protected.Patch("/password", cfg.Owners.UpdatePassword)

	app.Get("/shops/:shopId/menu-groups", cfg.MenuGroups.ListByShop)

	menuGroups := app.Group("/menu-groups", cfg.SessionGate.Handle)
	menuGroups.Post("/", cfg.MenuGroups.Create)
	menuGroups.Patch("/:id", cfg.MenuGroups.Update)
	menuGroups.Delete("/:id", cfg.MenuGroups.Delete)
}
