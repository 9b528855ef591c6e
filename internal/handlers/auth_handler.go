package handlers

import (
	"lapak/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes the identity resolved from the caller's token.
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Get("/me", h.HandleMe)
}

// HandleMe returns the caller the request was authenticated as.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	caller := middleware.CallerFrom(c)
	return c.JSON(fiber.Map{
		"user_id":   caller.UserID,
		"vendor_id": caller.VendorID,
		"role":      caller.Role,
	})
}
