package role

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes role management endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a role HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type roleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type roleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(role Role) roleResponse {
	return roleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Permissions: PermissionStrings(role.Permissions),
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

// Create handles role creation.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	role, err := h.service.Create(c.UserContext(), req.Name, PermissionsFromStrings(req.Permissions))
	if err != nil {
		return h.roleError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(role))
}

// Get returns a single role.
func (h *Handler) Get(c *fiber.Ctx) error {
	role, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.roleError(c, err)
	}
	return c.JSON(toResponse(role))
}

// List returns every role.
func (h *Handler) List(c *fiber.Ctx) error {
	roles, err := h.service.List(c.UserContext())
	if err != nil {
		return h.roleError(c, err)
	}
	out := make([]roleResponse, len(roles))
	for i, role := range roles {
		out[i] = toResponse(role)
	}
	return c.JSON(out)
}

// Update replaces a role's name and permissions.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	role, err := h.service.Update(c.UserContext(), c.Params("id"), req.Name, PermissionsFromStrings(req.Permissions))
	if err != nil {
		return h.roleError(c, err)
	}
	return c.JSON(toResponse(role))
}

// Delete removes a role.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.roleError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// roleError maps domain errors to client responses. Unexpected dependency
// failures are logged with detail and surfaced generically.
func (h *Handler) roleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNameTaken), errors.Is(err, ErrInvalidName), errors.Is(err, ErrUnknownPermission):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		if _, ok := err.(*fiber.Error); ok {
			return err
		}
		h.logger.Error("role operation failed", "path", c.Path(), "error", err)
		return fiber.NewError(http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}
