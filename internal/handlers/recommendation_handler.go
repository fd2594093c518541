package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RecommendationHandler serves the recommendation views.
type RecommendationHandler struct {
	service *services.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(service *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// RegisterRoutes registers the recommendation route.
func (h *RecommendationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/recommendations", h.HandleGetRecommendations)
}

// HandleGetRecommendations returns the featured, popular, budget and premium views.
func (h *RecommendationHandler) HandleGetRecommendations(c *fiber.Ctx) error {
	recommendations, err := h.service.Recommendations()
	if err != nil {
		return respondError(c, err, "Failed to fetch recommendations")
	}
	return c.JSON(recommendations)
}
