package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cvcoach/api/internal/models"
)

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository returns the Postgres entitlement store. Upsert is a
// conditional insert keyed by the unique normalized email, so duplicate
// webhook deliveries for the same purchase become no-ops.
func NewPostgresRepository(db *gorm.DB) EntitlementRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Upsert(ctx context.Context, email string) error {
	entitlement := &models.Entitlement{
		ID:          uuid.New(),
		Email:       email,
		ActivatedAt: time.Now(),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(entitlement).Error
	if err != nil {
		return fmt.Errorf("failed to upsert entitlement: %w", err)
	}
	return nil
}

func (r *postgresRepository) IsPremium(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Entitlement{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up entitlement: %w", err)
	}
	return count > 0, nil
}
