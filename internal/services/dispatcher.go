package services

import (
	"log"
	"strings"

	"cvcoach/api/internal/models"
)

type DispatchResult struct {
	Activated bool
	Email     string
}

// Dispatch routes a verified webhook event. Only a completed checkout
// produces an activation; every other type, known or future, is acknowledged
// without action so provider-side additions never fail the webhook. A
// completed checkout without any email is logged and ignored, not retried.
func Dispatch(event *models.CheckoutEvent) DispatchResult {
	if event.Type != models.EventCheckoutCompleted {
		log.Printf("ℹ️ Ignoring event type: %s", event.Type)
		return DispatchResult{}
	}

	email := extractEmail(&event.Data.Object)
	if email == "" {
		log.Printf("⚠️ No email found in checkout session for event %s", event.ID)
		return DispatchResult{}
	}

	return DispatchResult{Activated: true, Email: NormalizeEmail(email)}
}

// extractEmail walks the session's optional email fields in priority order:
// billing details, then the receipt email, then the customer record.
func extractEmail(session *models.CheckoutSession) string {
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		return session.CustomerDetails.Email
	}
	if session.CustomerEmail != "" {
		return session.CustomerEmail
	}
	if session.Customer != nil && session.Customer.Email != "" {
		return session.Customer.Email
	}
	return ""
}

// NormalizeEmail is applied before every store read or write so lookups stay
// case-insensitive regardless of the backend's own collation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
