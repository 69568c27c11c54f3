package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stockalert-app/stockalert-backend/api/responses"
	"github.com/stockalert-app/stockalert-backend/api/validators"
	"github.com/stockalert-app/stockalert-backend/internal/alerts"
	"github.com/stockalert-app/stockalert-backend/internal/notifications"
	"github.com/stockalert-app/stockalert-backend/pkg/enums"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
)

type permissionView struct {
	Permission string `json:"permission"`
}

// NotificationsPermission reports the authoritative permission state.
func NotificationsPermission(alertsSvc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		permission := alertsSvc.Permission(r.Context())
		responses.WriteSuccess(w, permissionView{Permission: string(permission)})
	}
}

// NotificationsRequestPermission runs the user-interactive prompt. Concurrent
// calls collapse onto the in-flight request inside the engine.
func NotificationsRequestPermission(alertsSvc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		permission, err := alertsSvc.RequestPermission(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, permissionView{Permission: string(permission)})
	}
}

// PermissionDenier records an explicit user refusal.
type PermissionDenier interface {
	Deny(ctx context.Context) error
}

// NotificationsDenyPermission records a refusal; only another explicit user
// action flips the state back.
func NotificationsDenyPermission(denier PermissionDenier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := denier.Deny(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeStorage, err, "record permission refusal"))
			return
		}
		responses.WriteSuccess(w, permissionView{Permission: string(enums.PermissionDenied)})
	}
}

// NotificationsList serves outbox rows, unread first by default.
func NotificationsList(notificationsSvc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unreadOnly := r.URL.Query().Get("unread") == "true"
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := notificationsSvc.List(r.Context(), unreadOnly, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// NotificationsMarkRead marks one outbox row as shown.
func NotificationsMarkRead(notificationsSvc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "notification id must be a uuid"))
			return
		}
		if err := notificationsSvc.MarkRead(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// NotificationsMarkAllRead marks the whole outbox as shown.
func NotificationsMarkAllRead(notificationsSvc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := notificationsSvc.MarkAllRead(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"updated": count})
	}
}
