package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cvcoach/api/internal/models"
	"cvcoach/api/internal/services"
)

type ScoreHandler struct {
	scorer services.ScorerService
}

func NewScoreHandler(scorer services.ScorerService) *ScoreHandler {
	return &ScoreHandler{
		scorer: scorer,
	}
}

// HandleScore handles POST /score
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	var req models.ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	result, err := h.scorer.Score(c.Context(), &req)
	if err != nil {
		return respondScoreError(c, err)
	}

	// The validated result is passed through unchanged.
	return c.JSON(result)
}

// respondScoreError maps each terminal pipeline state to its response.
// Diagnostic payloads (provider bodies, raw unparsed output) are surfaced for
// operator debugging, not sanitized.
func respondScoreError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   validationErr.Code,
			"message": validationErr.Message,
		})
	}

	var providerErr *services.ProviderError
	if errors.As(err, &providerErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "provider_error",
			"status":  providerErr.StatusCode,
			"details": providerErr.Body,
		})
	}

	var extractionErr *services.ExtractionError
	if errors.As(err, &extractionErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "no_usable_output",
			"raw":   string(extractionErr.Raw),
		})
	}

	var parseErr *services.ParseError
	if errors.As(err, &parseErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "unparsable_output",
			"raw":   parseErr.Raw,
		})
	}

	var schemaErr *services.SchemaError
	if errors.As(err, &schemaErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "schema_mismatch",
			"details": schemaErr.Err.Error(),
			"raw":     schemaErr.Raw,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
