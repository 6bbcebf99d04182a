package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cvcoach/api/internal/models"
	"cvcoach/api/internal/repositories"
	"cvcoach/api/internal/services"
)

type PremiumHandler struct {
	entitlementRepo repositories.EntitlementRepository
}

func NewPremiumHandler(entitlementRepo repositories.EntitlementRepository) *PremiumHandler {
	return &PremiumHandler{
		entitlementRepo: entitlementRepo,
	}
}

// HandlePremiumStatus handles GET /premium-status
func (h *PremiumHandler) HandlePremiumStatus(c *fiber.Ctx) error {
	email := services.NormalizeEmail(c.Query("email"))
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email required",
		})
	}

	premium, err := h.entitlementRepo.IsPremium(c.Context(), email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "store_error",
			"details": err.Error(),
		})
	}

	return c.JSON(models.PremiumStatusResponse{
		Email:   email,
		Premium: premium,
	})
}
