package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for admin authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the admin authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Post("/token", middleware.RequireAPIKey(h.authService), h.HandleIssueToken)
}

// HandleIssueToken exchanges the admin API key for a short-lived token.
func (h *AuthHandler) HandleIssueToken(c *fiber.Ctx) error {
	token, err := h.authService.IssueToken()
	if err != nil {
		log.Printf("Error issuing admin token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not issue token",
		})
	}
	return c.JSON(fiber.Map{
		"token": token,
	})
}
