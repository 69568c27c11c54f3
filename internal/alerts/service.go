package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockalert-app/stockalert-backend/internal/stock"
	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
	"github.com/stockalert-app/stockalert-backend/pkg/enums"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
	"github.com/stockalert-app/stockalert-backend/pkg/metrics"
)

// Service is the notification engine: a permission gate in front of the
// platform notifier, plus low-stock alert composition and cool-down.
type Service interface {
	Permission(ctx context.Context) enums.Permission
	RequestPermission(ctx context.Context) (enums.Permission, error)
	SendNotification(ctx context.Context, title string, opts Options) Handle
	SendLowStockAlert(ctx context.Context, low []stock.Level) Handle
}

// Options are caller-supplied notification fields. Set fields win over the
// engine defaults.
type Options struct {
	Body  string
	Icon  string
	Badge string
}

// ServiceParams configure the notification engine. Cooldown of zero disables
// alert de-duplication.
type ServiceParams struct {
	Permissions PermissionStore
	Notifier    Notifier
	Repo        Repository
	Metrics     *metrics.AlertMetrics
	Logger      *logger.Logger
	Cooldown    time.Duration
	MaxNamed    int
	Now         func() time.Time
}

type service struct {
	permissions PermissionStore
	notifier    Notifier
	repo        Repository
	metrics     *metrics.AlertMetrics
	log         *logger.Logger
	cooldown    time.Duration
	maxNamed    int
	now         func() time.Time

	// A user prompt must never be shown twice at once. Concurrent requests
	// collapse onto the in-flight one and share its outcome.
	requestMu sync.Mutex
	inflight  chan struct{}
	result    enums.Permission
	resultErr error
}

// NewService wires the notification engine.
func NewService(params ServiceParams) (Service, error) {
	if params.Permissions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "permission store required")
	}
	if params.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "alert event repository required")
	}
	if params.Cooldown < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cooldown must not be negative")
	}
	maxNamed := params.MaxNamed
	if maxNamed < 1 {
		maxNamed = 3
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		permissions: params.Permissions,
		notifier:    params.Notifier,
		repo:        params.Repo,
		metrics:     params.Metrics,
		log:         params.Logger,
		cooldown:    params.Cooldown,
		maxNamed:    maxNamed,
		now:         now,
	}, nil
}

// Permission re-reads the authoritative platform state. An unreadable state
// suppresses sends but is never an error to the caller.
func (s *service) Permission(ctx context.Context) enums.Permission {
	permission, err := s.permissions.Current(ctx)
	if err != nil {
		s.logError(ctx, "read notification permission", err)
		return enums.PermissionDefault
	}
	return permission
}

func (s *service) RequestPermission(ctx context.Context) (enums.Permission, error) {
	s.requestMu.Lock()
	if s.inflight != nil {
		done := s.inflight
		s.requestMu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return enums.PermissionDefault, ctx.Err()
		}
		s.requestMu.Lock()
		result, err := s.result, s.resultErr
		s.requestMu.Unlock()
		return result, err
	}
	done := make(chan struct{})
	s.inflight = done
	s.requestMu.Unlock()

	result, err := s.permissions.Request(ctx)
	if err != nil {
		result = enums.PermissionDefault
		err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "request notification permission")
	}

	s.requestMu.Lock()
	s.result, s.resultErr = result, err
	s.inflight = nil
	close(done)
	s.requestMu.Unlock()
	return result, err
}

// SendNotification dispatches a payload when permission is granted. It never
// returns an error: suppressed and failed sends both come back nil so the
// caller's flow continues either way.
func (s *service) SendNotification(ctx context.Context, title string, opts Options) Handle {
	permission := s.Permission(ctx)
	if permission != enums.PermissionGranted {
		s.metrics.IncSuppressed(string(permission))
		return nil
	}

	payload := Notification{
		Title: title,
		Body:  opts.Body,
		Icon:  DefaultIcon,
		Badge: DefaultBadge,
	}
	if opts.Icon != "" {
		payload.Icon = opts.Icon
	}
	if opts.Badge != "" {
		payload.Badge = opts.Badge
	}

	handle, err := s.notifier.Dispatch(ctx, payload)
	if err != nil {
		s.metrics.IncSuppressed("dispatch_failure")
		s.logError(ctx, "notification dispatch failed",
			pkgerrors.Wrap(pkgerrors.CodeDispatch, err, "dispatch notification"))
		return nil
	}
	s.metrics.IncDispatched()
	return handle
}

// SendLowStockAlert composes and dispatches one alert for the given batch.
// Products alerted within the cool-down window are dropped from the batch
// first; an empty or fully cooled-down batch dispatches nothing.
func (s *service) SendLowStockAlert(ctx context.Context, low []stock.Level) Handle {
	if len(low) == 0 {
		return nil
	}

	eligible := s.pastCooldown(ctx, low)
	if len(eligible) == 0 {
		s.metrics.IncSuppressed("cooldown")
		return nil
	}

	title, body := Compose(eligible, s.maxNamed)
	handle := s.SendNotification(ctx, title, Options{Body: body})
	if handle == nil {
		return nil
	}

	sentAt := s.now().UTC()
	for _, level := range eligible {
		event := &models.AlertEvent{
			ID:        uuid.New(),
			ProductID: level.ProductID,
			Stock:     level.Stock,
			SentAt:    sentAt,
		}
		if err := s.repo.Create(ctx, event); err != nil {
			// The alert is already out; the worst case is an early
			// re-alert on the next derivation pass.
			s.logError(ctx, "record alert event",
				pkgerrors.Wrap(pkgerrors.CodeStorage, err, "record alert event"))
		}
	}
	return handle
}

func (s *service) pastCooldown(ctx context.Context, low []stock.Level) []stock.Level {
	if s.cooldown == 0 {
		return low
	}
	now := s.now().UTC()
	eligible := make([]stock.Level, 0, len(low))
	for _, level := range low {
		last, err := s.repo.LastSent(ctx, level.ProductID)
		if err != nil {
			// An unreadable snapshot must not swallow the alert.
			s.logError(ctx, "read last alert event",
				pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read last alert event"))
			eligible = append(eligible, level)
			continue
		}
		if last != nil && now.Sub(last.SentAt) < s.cooldown {
			continue
		}
		eligible = append(eligible, level)
	}
	return eligible
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Error(ctx, msg, err)
}
