package controllers

import (
	"net/http"

	"github.com/stockalert-app/stockalert-backend/api/responses"
	"github.com/stockalert-app/stockalert-backend/pkg/config"
	"github.com/stockalert-app/stockalert-backend/pkg/db"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-StockAlert-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, pinger db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-StockAlert-Env", cfg.App.Env)
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeStorage, err, "local store unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
