package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orderly-app/orderly/internal/identity"
	"github.com/orderly-app/orderly/internal/middleware"
	"github.com/orderly-app/orderly/internal/role"
)

// RegisterUserAdminRoutes wires account administration: role assignment and
// activation toggles.
func RegisterUserAdminRoutes(r fiber.Router, ids *identity.Service, deps middleware.AuthDeps, logger *slog.Logger) {
	group := r.Group("/users", middleware.Authorize(deps, role.PermManageStaff))

	group.Put("/:id/role", func(c *fiber.Ctx) error {
		var req struct {
			RoleID string `json:"role_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := ids.AssignRole(c.UserContext(), c.Params("id"), req.RoleID); err != nil {
			return adminError(c, logger, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Role assigned."})
	})

	group.Put("/:id/status", func(c *fiber.Ctx) error {
		var req struct {
			IsActive bool `json:"is_active"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := ids.SetActive(c.UserContext(), c.Params("id"), req.IsActive); err != nil {
			return adminError(c, logger, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Account status updated."})
	})
}

// adminError maps domain errors to client responses. Unexpected dependency
// failures are logged with detail and surfaced generically.
func adminError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	switch {
	case errors.Is(err, identity.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, role.ErrNotFound):
		return fiber.NewError(http.StatusBadRequest, "role does not exist")
	default:
		logger.Error("account administration failed", "path", c.Path(), "error", err)
		return fiber.NewError(http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}
