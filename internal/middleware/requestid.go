package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// RequestID ensures each request carries a stable identifier for tracing
// and log correlation, generating one when the client did not supply it.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(RequestIDHeader, reqID)
		c.Locals(RequestIDHeader, reqID)

		return c.Next()
	}
}
