package middleware

import (
	"strings"

	"lapak/internal/engine"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const callerKey = "caller"

// AuthRequired is a Fiber middleware that resolves the Bearer token into an
// engine.Caller stored in the request locals.
func AuthRequired(authService *services.AuthService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "unauthorized",
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "unauthorized",
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		caller, err := authService.ValidateToken(parts[1])
		if err != nil {
			if log != nil {
				log.Debug("JWT validation failed", zap.Error(err))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "unauthorized",
				"message": "Invalid or expired token",
			})
		}

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// CallerFrom returns the caller stored by AuthRequired.
func CallerFrom(c *fiber.Ctx) engine.Caller {
	caller, _ := c.Locals(callerKey).(engine.Caller)
	return caller
}
