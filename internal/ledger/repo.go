package ledger

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
)

// Repository manages persistence for the append-only transaction log. There
// is deliberately no update or delete: history is immutable by construction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, transaction *models.Transaction) error
	ListAll(ctx context.Context) ([]models.Transaction, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Transaction, error)
	LastByProduct(ctx context.Context, productID int64) (*models.Transaction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// ListAll returns the full log newest-first by (timestamp, id).
func (r *repository) ListAll(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// ListByProduct returns one product's history oldest-first, the order the
// chain invariant is checked in.
func (r *repository) ListByProduct(ctx context.Context, productID int64) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("timestamp ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// LastByProduct returns the most recent transaction for a product, or nil
// when the product has no history.
func (r *repository) LastByProduct(ctx context.Context, productID int64) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("timestamp DESC, id DESC").
		First(&transaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}
