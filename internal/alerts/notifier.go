package alerts

import (
	"context"

	"github.com/stockalert-app/stockalert-backend/pkg/enums"
)

// PermissionStore is the platform's authoritative notification permission
// state. The engine re-reads it on every use instead of caching forever; the
// platform may reset the state between sessions.
type PermissionStore interface {
	Current(ctx context.Context) (enums.Permission, error)
	// Request prompts the user and blocks until they decide. Only granted
	// or denied come back; the store keeps the new state.
	Request(ctx context.Context) (enums.Permission, error)
}

// Notification is a composed alert payload handed to the platform.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
	Badge string `json:"badge"`
}

// Handle is a live platform notification.
type Handle interface {
	Close() error
}

// Notifier dispatches composed notifications to the platform.
type Notifier interface {
	Dispatch(ctx context.Context, notification Notification) (Handle, error)
}
