package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stockalert-app/stockalert-backend/api/responses"
	"github.com/stockalert-app/stockalert-backend/api/validators"
	"github.com/stockalert-app/stockalert-backend/internal/products"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
)

const maxProductNameLen = 120

type createProductRequest struct {
	Name              string `json:"name" validate:"required"`
	Stock             int    `json:"stock" validate:"min=0"`
	LowStockThreshold *int   `json:"low_stock_threshold,omitempty"`
}

func ProductsCreate(productsSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := productsSvc.Create(r.Context(), products.CreateInput{
			Name:              validators.SanitizeString(req.Name, maxProductNameLen),
			Stock:             req.Stock,
			LowStockThreshold: req.LowStockThreshold,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func ProductsList(productsSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := productsSvc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func ProductsGet(productsSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer"))
			return
		}

		product, err := productsSvc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
