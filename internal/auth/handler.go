package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orderly-app/orderly/internal/identity"
	"github.com/orderly-app/orderly/internal/middleware"
	"github.com/orderly-app/orderly/internal/otp"
)

// Error codes surfaced to clients alongside HTTP status codes.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeOTPInvalid         = "OTP_INVALID"
	CodeOTPExpired         = "OTP_EXPIRED"
	CodeServerError        = "SERVER_ERROR"
)

// Handler exposes the authentication endpoints.
type Handler struct {
	svc        *Service
	identities *identity.Service
	logger     *slog.Logger
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(svc *Service, identities *identity.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, identities: identities, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register handles super-admin registration.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	}
	_, err := h.svc.Register(c.UserContext(), identity.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return h.authError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Super admin registered successfully.",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and returns a session credential.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	}
	if req.Email == "" || req.Password == "" {
		return h.fail(c, http.StatusBadRequest, CodeValidation, "Email and password are required.", nil)
	}
	result, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.authError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user_id": result.UserID,
		"token":   result.Token,
	})
}

type forgotRequest struct {
	Email string `json:"email"`
}

// ForgotPassword starts the OTP reset flow.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	}
	if req.Email == "" {
		return h.fail(c, http.StatusBadRequest, CodeValidation, "Please enter a valid email.", nil)
	}
	if err := h.svc.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return h.authError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password reset code has been sent to your email.",
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP checks a reset code.
func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	}
	if req.Email == "" || req.OTP == "" {
		return h.fail(c, http.StatusBadRequest, CodeValidation, "Email and OTP are required.", nil)
	}
	if err := h.svc.VerifyOTP(c.UserContext(), req.Email, req.OTP); err != nil {
		return h.authError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP verified successfully.",
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// ResetPassword completes the recovery flow with a verified code.
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		return h.fail(c, http.StatusBadRequest, CodeValidation, "Email, OTP, and new password are required.", nil)
	}
	if err := h.svc.ResetPassword(c.UserContext(), req.Email, req.OTP, req.NewPassword); err != nil {
		return h.authError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password has been reset successfully.",
	})
}

// Profile returns the authenticated account.
func (h *Handler) Profile(c *fiber.Ctx) error {
	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return h.fail(c, http.StatusUnauthorized, CodeInvalidCredentials, "Authentication required.", nil)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":             user.ID,
			"email":          user.Email,
			"name":           user.Name,
			"role_id":        user.RoleID,
			"is_super_admin": user.IsSuperAdmin,
			"is_active":      user.IsActive,
			"created_at":     user.CreatedAt,
		},
	})
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// UpdateProfile changes the authenticated account's display name.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		return h.fail(c, http.StatusUnauthorized, CodeInvalidCredentials, "Authentication required.", nil)
	}
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	}
	if err := h.identities.UpdateProfile(c.UserContext(), user.ID, req.Name); err != nil {
		return h.authError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully.",
	})
}

// authError maps domain errors onto the client-facing taxonomy. Unexpected
// dependency failures are logged with detail and reported generically.
func (h *Handler) authError(c *fiber.Ctx, err error) error {
	var verr *identity.ValidationError
	switch {
	case errors.As(err, &verr):
		return h.fail(c, http.StatusBadRequest, CodeValidation, "Password is not strong enough.", verr.Violations)
	case errors.Is(err, identity.ErrMissingFields), errors.Is(err, identity.ErrInvalidEmail):
		return h.fail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	case errors.Is(err, identity.ErrSuperAdminExists):
		return h.fail(c, http.StatusBadRequest, CodeValidation, "Super admin already exists.", nil)
	case errors.Is(err, identity.ErrEmailTaken):
		return h.fail(c, http.StatusBadRequest, CodeValidation, "Email is already registered.", nil)
	case errors.Is(err, identity.ErrInvalidCredentials):
		return h.fail(c, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password.", nil)
	case errors.Is(err, identity.ErrNotFound):
		return h.fail(c, http.StatusNotFound, CodeNotFound, "No user account found with this email.", nil)
	case errors.Is(err, otp.ErrExpired):
		return h.fail(c, http.StatusBadRequest, CodeOTPExpired, "OTP expired. Please request a new one.", nil)
	case errors.Is(err, otp.ErrNotFound), errors.Is(err, otp.ErrAlreadyUsed):
		return h.fail(c, http.StatusBadRequest, CodeOTPInvalid, "Invalid or already used OTP. Please request a new one.", nil)
	case errors.Is(err, otp.ErrNotVerified):
		return h.fail(c, http.StatusBadRequest, CodeOTPInvalid, "OTP not verified yet. Please verify the OTP first.", nil)
	default:
		h.logger.Error("auth operation failed", "path", c.Path(), "error", err)
		return h.fail(c, http.StatusInternalServerError, CodeServerError, "Something went wrong. Please try again later.", nil)
	}
}

func (h *Handler) fail(c *fiber.Ctx, status int, code, message string, details []string) error {
	body := fiber.Map{
		"success": false,
		"message": message,
		"error":   code,
	}
	if len(details) > 0 {
		body["errors"] = details
	}
	return c.Status(status).JSON(body)
}
