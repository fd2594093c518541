package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler serves the inventory dashboard endpoints.
type InventoryHandler struct {
	service *services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	inventoryRoutes := router.Group("/inventory")
	inventoryRoutes.Get("/stats", h.HandleGetStats)
	inventoryRoutes.Get("/report", h.HandleGetReport)
}

// HandleGetStats returns the inventory statistics.
func (h *InventoryHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return respondError(c, err, "Failed to fetch inventory statistics")
	}
	return c.JSON(stats)
}

// HandleGetReport returns the statistics with the low and out-of-stock lists.
func (h *InventoryHandler) HandleGetReport(c *fiber.Ctx) error {
	report, err := h.service.Report()
	if err != nil {
		return respondError(c, err, "Failed to fetch inventory report")
	}
	return c.JSON(report)
}
