package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
	"github.com/stockalert-app/stockalert-backend/pkg/enums"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
	"github.com/stockalert-app/stockalert-backend/pkg/metrics"
)

// Service defines operations on the transaction log.
type Service interface {
	Append(ctx context.Context, input AppendInput) (*models.Transaction, error)
	ReadAll(ctx context.Context) ([]models.Transaction, error)
}

// AppendInput captures the immutable data a transaction requires. OldStock is
// computed by the caller from the product's current level; the service
// derives NewStock and rejects any append that would take stock negative.
type AppendInput struct {
	ProductID   int64                 `json:"product_id"`
	ProductName string                `json:"product_name"`
	Type        enums.TransactionType `json:"type"`
	Quantity    int                   `json:"quantity"`
	OldStock    int                   `json:"old_stock"`
}

// ServiceParams configure the ledger service.
type ServiceParams struct {
	Repo    Repository
	Metrics *metrics.LedgerMetrics
	Now     func() time.Time
}

type service struct {
	repo    Repository
	metrics *metrics.LedgerMetrics
	now     func() time.Time

	// Appends for the same product must not interleave or the old/new
	// stock chain breaks. One process, one writer: a coarse mutex is
	// enough.
	appendMu sync.Mutex
}

// NewService wires a ledger service with the provided repository.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ledger repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

func (s *service) Append(ctx context.Context, input AppendInput) (*models.Transaction, error) {
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.OldStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "old stock must not be negative")
	}

	newStock := input.OldStock + input.Quantity
	if input.Type == enums.TransactionTypeSale {
		newStock = input.OldStock - input.Quantity
	}
	if newStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale exceeds available stock").
			WithDetails(map[string]any{"old_stock": input.OldStock, "quantity": input.Quantity})
	}

	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	date := s.now().UTC()
	transaction := &models.Transaction{
		ProductID:   input.ProductID,
		ProductName: input.ProductName,
		Type:        input.Type,
		Quantity:    input.Quantity,
		OldStock:    input.OldStock,
		NewStock:    newStock,
		Date:        date,
		Timestamp:   date.UnixMilli(),
	}

	if err := s.repo.Create(ctx, transaction); err != nil {
		s.metrics.IncStorageFailure()
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "append transaction")
	}

	s.metrics.IncAppended(string(input.Type))
	return transaction, nil
}

func (s *service) ReadAll(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := s.repo.ListAll(ctx)
	if err != nil {
		s.metrics.IncStorageFailure()
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read transaction log")
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}
