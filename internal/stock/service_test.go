package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/stockalert-app/stockalert-backend/internal/ledger"
	"github.com/stockalert-app/stockalert-backend/internal/products"
	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
)

type fakeProducts struct {
	products []models.Product
	err      error
}

func (f *fakeProducts) WithTx(tx *gorm.DB) products.Repository { return f }

func (f *fakeProducts) Create(ctx context.Context, product *models.Product) error { return nil }

func (f *fakeProducts) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return nil, nil
}

func (f *fakeProducts) List(ctx context.Context) ([]models.Product, error) {
	return f.products, f.err
}

type fakeLedger struct {
	transactions []models.Transaction
	err          error
}

func (f *fakeLedger) WithTx(tx *gorm.DB) ledger.Repository { return f }

func (f *fakeLedger) Create(ctx context.Context, transaction *models.Transaction) error { return nil }

func (f *fakeLedger) ListAll(ctx context.Context) ([]models.Transaction, error) {
	return f.transactions, f.err
}

func (f *fakeLedger) ListByProduct(ctx context.Context, productID int64) ([]models.Transaction, error) {
	return nil, nil
}

func (f *fakeLedger) LastByProduct(ctx context.Context, productID int64) (*models.Transaction, error) {
	return nil, nil
}

func newStockService(t *testing.T, registry *fakeProducts, log *fakeLedger, threshold int) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Products:  registry,
		Ledger:    log,
		Threshold: threshold,
	})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestService_SaleDropsBelowThresholdFlagsLow(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	registry := &fakeProducts{products: []models.Product{{ID: 1, Name: "Milk", Stock: 0}}}
	log := &fakeLedger{transactions: []models.Transaction{
		tx(2, 1, "Milk", 10, 7, at.Add(time.Minute)),
		tx(1, 1, "Milk", 0, 10, at),
	}}
	svc := newStockService(t, registry, log, 8)

	levels, mismatches, err := svc.Levels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mismatches) != 0 {
		t.Fatalf("unexpected mismatches: %v", mismatches)
	}
	if levels[0].Stock != 7 || !levels[0].Low {
		t.Fatalf("expected stock 7 below threshold 8 to be low, got %+v", levels[0])
	}
}

func TestService_PerProductThresholdOverridesGlobal(t *testing.T) {
	override := 2
	registry := &fakeProducts{products: []models.Product{
		{ID: 1, Name: "Milk", Stock: 4, LowStockThreshold: &override},
		{ID: 2, Name: "Sugar", Stock: 4},
	}}
	svc := newStockService(t, registry, &fakeLedger{}, 5)

	levels, _, err := svc.Levels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if levels[0].Low {
		t.Fatalf("stock 4 with override threshold 2 must not be low: %+v", levels[0])
	}
	if !levels[1].Low {
		t.Fatalf("stock 4 with global threshold 5 must be low: %+v", levels[1])
	}
}

func TestService_ThresholdBoundaryIsExclusive(t *testing.T) {
	registry := &fakeProducts{products: []models.Product{{ID: 1, Name: "Milk", Stock: 5}}}
	svc := newStockService(t, registry, &fakeLedger{}, 5)

	levels, _, err := svc.Levels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if levels[0].Low {
		t.Fatalf("stock equal to the threshold must not be low: %+v", levels[0])
	}
}

func TestService_MismatchReportedNotFatal(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	registry := &fakeProducts{products: []models.Product{{ID: 1, Name: "Milk", Stock: 0}}}
	log := &fakeLedger{transactions: []models.Transaction{
		tx(1, 1, "Milk", 0, 10, at),
		tx(2, 1, "Milk", 9, 6, at.Add(time.Minute)),
	}}
	svc := newStockService(t, registry, log, 5)

	levels, mismatches, err := svc.Levels(context.Background())
	if err != nil {
		t.Fatalf("mismatch must degrade, not fail: %v", err)
	}
	if len(mismatches) != 1 {
		t.Fatalf("expected 1 mismatch report, got %d", len(mismatches))
	}
	if levels[0].Stock != 6 {
		t.Fatalf("expected latest new stock 6, got %d", levels[0].Stock)
	}
}

func TestService_LowStockFiltersLevels(t *testing.T) {
	registry := &fakeProducts{products: []models.Product{
		{ID: 1, Name: "Milk", Stock: 2},
		{ID: 2, Name: "Sugar", Stock: 9},
	}}
	svc := newStockService(t, registry, &fakeLedger{}, 5)

	low, err := svc.LowStock(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(low) != 1 || low[0].ProductID != 1 {
		t.Fatalf("expected only Milk to be low, got %v", low)
	}
}

func TestService_SurfacesStorageFailures(t *testing.T) {
	svc := newStockService(t, &fakeProducts{err: errors.New("disk read failed")}, &fakeLedger{}, 5)
	if _, _, err := svc.Levels(context.Background()); pkgerrors.As(err).Code() != pkgerrors.CodeStorage {
		t.Fatalf("expected storage code from registry failure, got %v", err)
	}

	svc = newStockService(t, &fakeProducts{}, &fakeLedger{err: errors.New("disk read failed")}, 5)
	if _, _, err := svc.Levels(context.Background()); pkgerrors.As(err).Code() != pkgerrors.CodeStorage {
		t.Fatalf("expected storage code from log failure, got %v", err)
	}
}
