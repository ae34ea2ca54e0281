package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderly-app/orderly/internal/auth"
)

// RegisterAuthRoutes wires the public authentication endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
	group.Post("/password/forgot", h.ForgotPassword)
	group.Post("/password/verify-otp", h.VerifyOTP)
	group.Post("/password/reset", h.ResetPassword)
}
