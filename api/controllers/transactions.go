package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/stockalert-app/stockalert-backend/api/responses"
	"github.com/stockalert-app/stockalert-backend/api/validators"
	"github.com/stockalert-app/stockalert-backend/internal/history"
	"github.com/stockalert-app/stockalert-backend/internal/ledger"
	"github.com/stockalert-app/stockalert-backend/internal/products"
	"github.com/stockalert-app/stockalert-backend/internal/stock"
	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
	"github.com/stockalert-app/stockalert-backend/pkg/enums"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
)

type createTransactionRequest struct {
	ProductID int64  `json:"product_id" validate:"required,min=1"`
	Type      string `json:"type" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type transactionView struct {
	models.Transaction
	RelativeDate string `json:"relative_date"`
}

// LowStockChecker runs one derivation pass after an append so a sale that
// crosses a threshold alerts without waiting for the next watch tick.
type LowStockChecker interface {
	RunOnce(ctx context.Context) error
}

// TransactionsCreate appends a stock-changing transaction. The current level
// comes from derivation, not the client, so the chain invariant cannot be
// broken by a stale UI.
func TransactionsCreate(
	ledgerSvc ledger.Service,
	productsSvc products.Service,
	stockSvc stock.Service,
	checker LowStockChecker,
	logg *logger.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTransactionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txType, err := enums.ParseTransactionType(req.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "type must be sale or restock"))
			return
		}

		product, err := productsSvc.Get(r.Context(), req.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		levels, _, err := stockSvc.Levels(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		oldStock := product.Stock
		for _, level := range levels {
			if level.ProductID == product.ID {
				oldStock = level.Stock
				break
			}
		}

		transaction, err := ledgerSvc.Append(r.Context(), ledger.AppendInput{
			ProductID:   product.ID,
			ProductName: product.Name,
			Type:        txType,
			Quantity:    req.Quantity,
			OldStock:    oldStock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if checker != nil {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				_ = checker.RunOnce(ctx)
			}()
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, transaction)
	}
}

// TransactionsList serves the filtered history view, newest first.
func TransactionsList(ledgerSvc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseQueryInt(r, "product_id", 0, 0, 1<<31)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dateRange, err := enums.ParseDateRange(r.URL.Query().Get("range"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "range must be all, today, week or month"))
			return
		}

		transactions, err := ledgerSvc.ReadAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		now := time.Now()
		filtered := history.Filter(transactions, history.Criteria{
			ProductID: int64(productID),
			Range:     dateRange,
		}, now)

		views := make([]transactionView, 0, len(filtered))
		for _, transaction := range filtered {
			views = append(views, transactionView{
				Transaction:  transaction,
				RelativeDate: history.RelativeLabel(transaction.Date, now),
			})
		}
		responses.WriteSuccess(w, views)
	}
}
