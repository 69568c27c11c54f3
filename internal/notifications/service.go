package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockalert-app/stockalert-backend/internal/alerts"
	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
)

const defaultListLimit = 50

// Service defines outbox list/read operations.
type Service interface {
	List(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires the outbox service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	notifications, err := s.repo.List(ctx, unreadOnly, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list notifications")
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (s *service) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}
	updated, err := s.repo.MarkRead(ctx, notificationID, s.now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "mark notification read")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context) (int64, error) {
	count, err := s.repo.MarkAllRead(ctx, s.now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "mark notifications read")
	}
	return count, nil
}

// Outbox adapts the repository into the engine's dispatch boundary. A
// dispatched alert becomes an unread row the UI shell polls and renders.
type Outbox struct {
	repo Repository
	now  func() time.Time
}

// NewOutbox returns a Notifier writing into the outbox table.
func NewOutbox(repo Repository) (*Outbox, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &Outbox{repo: repo, now: time.Now}, nil
}

// Dispatch stores the payload and returns a handle that marks it read.
func (o *Outbox) Dispatch(ctx context.Context, payload alerts.Notification) (alerts.Handle, error) {
	notification := &models.Notification{
		ID:        uuid.New(),
		Title:     payload.Title,
		Body:      payload.Body,
		Icon:      payload.Icon,
		Badge:     payload.Badge,
		CreatedAt: o.now().UTC(),
	}
	if err := o.repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return &outboxHandle{repo: o.repo, id: notification.ID, now: o.now}, nil
}

type outboxHandle struct {
	repo Repository
	id   uuid.UUID
	now  func() time.Time
}

func (h *outboxHandle) Close() error {
	_, err := h.repo.MarkRead(context.Background(), h.id, h.now().UTC())
	return err
}
