package middleware

import (
	"log"
	"strings"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// APIKeyHeader carries the shared admin key.
const APIKeyHeader = "X-API-Key"

// AdminRequired is a Fiber middleware admitting requests that present the admin
// API key, either in the X-API-Key header or as a Bearer credential. A Bearer
// credential may also be a token issued by AuthService.IssueToken.
func AdminRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key := c.Get(APIKeyHeader); key != "" {
			if authService.Authenticate(key) {
				return c.Next()
			}
			return unauthorized(c)
		}

		credential, ok := bearerCredential(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c)
		}
		if authService.Authenticate(credential) {
			return c.Next()
		}
		if _, err := authService.ValidateToken(credential); err != nil {
			log.Printf("Admin authentication failed for %s %s: %v", c.Method(), c.Path(), err)
			return unauthorized(c)
		}
		return c.Next()
	}
}

// RequireAPIKey admits only requests presenting the raw admin key; issued tokens
// are not accepted. It guards the token exchange itself.
func RequireAPIKey(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(APIKeyHeader)
		if key == "" {
			key, _ = bearerCredential(c.Get(fiber.HeaderAuthorization))
		}
		if !authService.Authenticate(key) {
			return unauthorized(c)
		}
		return c.Next()
	}
}

// bearerCredential extracts <x> from "Bearer <x>".
func bearerCredential(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized. Admin API key required.",
	})
}
