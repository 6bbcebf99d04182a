package repositories

import "context"

// EntitlementRepository is the sole durable owner of entitlement state.
// Emails handed to it must already be normalized (trimmed, lower-cased); the
// caller owns normalization so lookups stay case-insensitive even when the
// backend's comparison is not.
type EntitlementRepository interface {
	Upsert(ctx context.Context, email string) error
	IsPremium(ctx context.Context, email string) (bool, error)
}
