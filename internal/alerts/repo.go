package alerts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
)

// Repository persists last-alerted snapshots for the cool-down policy.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, event *models.AlertEvent) error
	LastSent(ctx context.Context, productID int64) (*models.AlertEvent, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an alert event repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, event *models.AlertEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) LastSent(ctx context.Context, productID int64) (*models.AlertEvent, error) {
	var event models.AlertEvent
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sent_at DESC").
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}
