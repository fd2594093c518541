package handlers

import (
	"errors"
	"log"

	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service and repository errors onto HTTP responses.
// Anything unrecognised, storage failures included, becomes a 500 with fallback as message.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	log.Printf("Error handling %s %s: %v", c.Method(), c.OriginalURL(), err)

	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	case errors.Is(err, repositories.ErrDuplicateName):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": repositories.ErrDuplicateName.Error(),
		})
	case errors.Is(err, services.ErrInvalidSort):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}
