package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"cvcoach/api/internal/config"
	"cvcoach/api/internal/repositories"
	"cvcoach/api/internal/services"
)

// signatureHeaderName carries the provider's signature token, computed over
// the exact raw request body.
const signatureHeaderName = "Stripe-Signature"

type WebhookHandler struct {
	cfg             *config.Config
	entitlementRepo repositories.EntitlementRepository
}

func NewWebhookHandler(cfg *config.Config, entitlementRepo repositories.EntitlementRepository) *WebhookHandler {
	return &WebhookHandler{
		cfg:             cfg,
		entitlementRepo: entitlementRepo,
	}
}

// HandleWebhook handles POST /payment-webhook
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	signature := c.Get(signatureHeaderName)
	if signature == "" {
		// An unsigned request is a liveness probe: answer with a capability
		// summary and never touch business logic.
		return c.JSON(fiber.Map{
			"ok":              true,
			"message":         "Webhook reachable. Waiting for signed events.",
			"hasStripeSecret": h.cfg.Stripe.WebhookSecret != "",
			"hasAirtableKey":  h.cfg.Store.Airtable.APIKey != "",
			"hasAirtableBase": h.cfg.Store.Airtable.BaseID != "",
		})
	}

	// c.Body() is the exact raw payload the signature was computed over.
	event, err := services.VerifySignature(c.Body(), signature, h.cfg.Stripe.WebhookSecret, h.cfg.Stripe.Tolerance)
	if err != nil {
		log.Printf("❌ Signature verify failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_signature",
			"message": err.Error(),
		})
	}

	log.Printf("✅ Webhook event: %s", event.Type)

	result := services.Dispatch(event)
	if result.Activated {
		if err := h.entitlementRepo.Upsert(c.Context(), result.Email); err != nil {
			log.Printf("🔥 Webhook crashed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "webhook_crashed",
				"message": err.Error(),
			})
		}
		log.Printf("✅ Premium saved: %s", result.Email)
	}

	return c.SendString("ok")
}
