package controllers

import (
	"net/http"

	"github.com/stockalert-app/stockalert-backend/api/responses"
	"github.com/stockalert-app/stockalert-backend/api/validators"
	"github.com/stockalert-app/stockalert-backend/internal/connectivity"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
)

type connectivityView struct {
	Online bool `json:"online"`
}

type connectivityReport struct {
	Online *bool `json:"online" validate:"required"`
}

// ConnectivityStatus serves the last observed reachability state.
func ConnectivityStatus(monitor *connectivity.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, connectivityView{Online: monitor.Online()})
	}
}

// ConnectivityReport lets the UI shell forward the platform's online/offline
// transitions into the source the monitor subscribes to.
func ConnectivityReport(source *connectivity.ManualSource, monitor *connectivity.Monitor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req connectivityReport
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		source.Set(*req.Online)
		responses.WriteSuccess(w, connectivityView{Online: monitor.Online()})
	}
}
