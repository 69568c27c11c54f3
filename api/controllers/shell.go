package controllers

import (
	"net/http"

	"github.com/stockalert-app/stockalert-backend/api/responses"
	"github.com/stockalert-app/stockalert-backend/internal/shell"
)

// ShellManifest serves the precache list the caching layer installs from.
func ShellManifest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, shell.PrecacheManifest())
	}
}
