package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/orderly-app/orderly/internal/identity"
	"github.com/orderly-app/orderly/internal/role"
	"github.com/orderly-app/orderly/internal/token"
)

// Locals keys set by Authorize for downstream handlers.
const (
	UserKey     = "auth_user"
	UserTypeKey = "auth_user_type"
)

// User type classifications attached to the request context.
const (
	UserTypeSuperAdmin = "super_admin"
	UserTypeUser       = "user"
)

// AuthDeps carries the collaborators the authorization gate needs.
type AuthDeps struct {
	Users  identity.Repository
	Roles  role.Repository
	Tokens *token.Service
}

// Authorize returns a per-route gate that verifies the bearer credential,
// resolves the account, and enforces the required permission set. Every
// permission in required must be granted (AND semantics). Super admins
// bypass the permission check entirely. Each request is evaluated
// independently; there is no session state.
func Authorize(d AuthDeps, required ...role.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return reject(c, http.StatusUnauthorized, "NO_TOKEN", "Access denied. Authentication token is required.")
		}
		credential := strings.TrimSpace(authz[len("Bearer "):])
		if credential == "" {
			return reject(c, http.StatusUnauthorized, "NO_TOKEN", "Access denied. Authentication token is missing.")
		}

		subject, err := d.Tokens.Verify(credential)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				return reject(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Session has expired. Please login again.")
			}
			return reject(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid authentication token.")
		}

		user, err := d.Users.FindByID(c.UserContext(), subject)
		if err != nil {
			if errors.Is(err, identity.ErrNotFound) {
				return reject(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found or token is invalid.")
			}
			return reject(c, http.StatusInternalServerError, "SERVER_ERROR", "Server error during authentication.")
		}

		if !user.IsActive {
			return reject(c, http.StatusUnauthorized, "ACCOUNT_DEACTIVATED", "Account is deactivated. Please contact administrator.")
		}

		if user.IsSuperAdmin {
			c.Locals(UserKey, user)
			c.Locals(UserTypeKey, UserTypeSuperAdmin)
			return c.Next()
		}

		if len(required) == 0 {
			c.Locals(UserKey, user)
			c.Locals(UserTypeKey, UserTypeUser)
			return c.Next()
		}

		if user.RoleID == "" {
			return reject(c, http.StatusForbidden, "NO_ROLE", "Access denied. No role assigned to user.")
		}

		assigned, err := d.Roles.FindByID(c.UserContext(), user.RoleID)
		if err != nil {
			if errors.Is(err, role.ErrNotFound) {
				// The referenced role was deleted; a dangling reference
				// reads as no role.
				return reject(c, http.StatusForbidden, "NO_ROLE", "Access denied. No role assigned to user.")
			}
			return reject(c, http.StatusInternalServerError, "SERVER_ERROR", "Server error during authentication.")
		}

		if !assigned.HasAll(required) {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"success":          false,
				"message":          "Access denied. Insufficient permissions.",
				"error":            "INSUFFICIENT_PERMISSIONS",
				"required":         role.PermissionStrings(required),
				"user_permissions": role.PermissionStrings(assigned.Permissions),
			})
		}

		c.Locals(UserKey, user)
		c.Locals(UserTypeKey, UserTypeUser)
		return c.Next()
	}
}

func reject(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   code,
	})
}

// AuthenticatedUser returns the account attached by Authorize, if any.
func AuthenticatedUser(c *fiber.Ctx) (identity.User, bool) {
	user, ok := c.Locals(UserKey).(identity.User)
	return user, ok
}
