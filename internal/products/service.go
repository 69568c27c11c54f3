package products

import (
	"context"
	"strings"

	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
)

// Service defines product registry operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
}

// CreateInput captures a new registry entry. Stock is the baseline level
// before any transactions exist for the product.
type CreateInput struct {
	Name              string `json:"name"`
	Stock             int    `json:"stock"`
	LowStockThreshold *int   `json:"low_stock_threshold,omitempty"`
}

type service struct {
	repo Repository
}

// NewService wires a product service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	if input.LowStockThreshold != nil && *input.LowStockThreshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "low stock threshold must not be negative")
	}

	product := &models.Product{
		Name:              name,
		Stock:             input.Stock,
		LowStockThreshold: input.LowStockThreshold,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create product")
	}
	return product, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "get product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list products")
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
