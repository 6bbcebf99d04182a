package models

// EventCheckoutCompleted is the only event type that activates an
// entitlement. Every other type is acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

// CheckoutEvent is a payment-provider webhook event. It is decoded from the
// verified raw body and never mutated afterwards.
type CheckoutEvent struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Created int64     `json:"created"`
	Data    EventData `json:"data"`
}

type EventData struct {
	Object CheckoutSession `json:"object"`
}

// CheckoutSession carries the purchase details. All three email locations are
// optional; the dispatcher walks them in priority order.
type CheckoutSession struct {
	ID              string           `json:"id"`
	CustomerDetails *CustomerDetails `json:"customer_details,omitempty"`
	CustomerEmail   string           `json:"customer_email,omitempty"`
	Customer        *Customer        `json:"customer,omitempty"`
}

type CustomerDetails struct {
	Email string `json:"email"`
}

type Customer struct {
	Email string `json:"email"`
}
