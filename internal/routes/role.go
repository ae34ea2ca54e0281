package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderly-app/orderly/internal/middleware"
	"github.com/orderly-app/orderly/internal/role"
)

// RegisterRoleRoutes wires role catalogue management, guarded by the
// settings-management permission.
func RegisterRoleRoutes(r fiber.Router, h *role.Handler, deps middleware.AuthDeps) {
	group := r.Group("/roles", middleware.Authorize(deps, role.PermManageSettings))
	group.Post("/", h.Create)
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}
