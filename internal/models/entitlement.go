package models

import (
	"time"

	"github.com/google/uuid"
)

// Entitlement records that a given email has premium access. Rows are created
// by the webhook pipeline and never mutated afterwards; there is no deletion
// path. Email is stored normalized (trimmed, lower-cased).
type Entitlement struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email       string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	ActivatedAt time.Time `gorm:"type:timestamp;default:now()" json:"activated_at"`
}

func (Entitlement) TableName() string {
	return "premium_users"
}
