package stock

import (
	"context"

	"github.com/stockalert-app/stockalert-backend/internal/ledger"
	"github.com/stockalert-app/stockalert-backend/internal/products"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
	"github.com/stockalert-app/stockalert-backend/pkg/metrics"
)

// Service derives current stock levels from the transaction log.
type Service interface {
	Levels(ctx context.Context) ([]Level, []Mismatch, error)
	LowStock(ctx context.Context) ([]Level, error)
}

// ServiceParams configure the derivation service. Threshold is the global
// low-stock level, overridden per product where the registry sets one.
type ServiceParams struct {
	Products  products.Repository
	Ledger    ledger.Repository
	Metrics   *metrics.LedgerMetrics
	Logger    *logger.Logger
	Threshold int
}

type service struct {
	products  products.Repository
	ledger    ledger.Repository
	metrics   *metrics.LedgerMetrics
	log       *logger.Logger
	threshold int
}

// NewService wires a stock derivation service.
func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products repository required")
	}
	if params.Ledger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ledger repository required")
	}
	if params.Threshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "low stock threshold must not be negative")
	}
	return &service{
		products:  params.Products,
		ledger:    params.Ledger,
		metrics:   params.Metrics,
		log:       params.Logger,
		threshold: params.Threshold,
	}, nil
}

// Levels folds the full log onto the registry. Chain violations are reported
// alongside the levels, never as an error: the latest new stock still wins so
// the caller gets a usable, if degraded, view.
func (s *service) Levels(ctx context.Context) ([]Level, []Mismatch, error) {
	registry, err := s.products.List(ctx)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list products for derivation")
	}
	transactions, err := s.ledger.ListAll(ctx)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read log for derivation")
	}

	levels, mismatches := Fold(registry, transactions)
	for _, mismatch := range mismatches {
		s.metrics.IncMismatch()
		s.report(ctx, mismatch)
	}

	overrides := make(map[int64]int, len(registry))
	for _, product := range registry {
		if product.LowStockThreshold != nil {
			overrides[product.ID] = *product.LowStockThreshold
		}
	}
	for i := range levels {
		threshold := s.threshold
		if override, ok := overrides[levels[i].ProductID]; ok {
			threshold = override
		}
		levels[i].Threshold = threshold
		levels[i].Low = levels[i].Stock < threshold
	}
	return levels, mismatches, nil
}

func (s *service) LowStock(ctx context.Context) ([]Level, error) {
	levels, _, err := s.Levels(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]Level, 0, len(levels))
	for _, level := range levels {
		if level.Low {
			low = append(low, level)
		}
	}
	return low, nil
}

func (s *service) report(ctx context.Context, mismatch Mismatch) {
	if s.log == nil {
		return
	}
	entry := s.log.WithFields(ctx, map[string]any{
		"product_id":     mismatch.ProductID,
		"transaction_id": mismatch.TransactionID,
		"expected_old":   mismatch.ExpectedOld,
		"actual_old":     mismatch.ActualOld,
	})
	s.log.Error(entry, "stock chain mismatch, trusting latest transaction",
		pkgerrors.New(pkgerrors.CodeDerivation, "transaction chain does not link"))
}
