package controllers

import (
	"net/http"

	"github.com/stockalert-app/stockalert-backend/api/responses"
	"github.com/stockalert-app/stockalert-backend/internal/stock"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
)

type stockView struct {
	Levels     []stock.Level    `json:"levels"`
	Mismatches []stock.Mismatch `json:"mismatches,omitempty"`
}

// StockLevels serves derived per-product levels. Chain mismatches ride along
// in the payload so the UI can show a corruption warning without the request
// failing.
func StockLevels(stockSvc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		levels, mismatches, err := stockSvc.Levels(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stockView{Levels: levels, Mismatches: mismatches})
	}
}

// StockLow serves only the products at or past their threshold.
func StockLow(stockSvc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		low, err := stockSvc.LowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, low)
	}
}
