package watch

import (
	"context"
	"time"

	"github.com/stockalert-app/stockalert-backend/internal/alerts"
	"github.com/stockalert-app/stockalert-backend/internal/stock"
	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
	"github.com/stockalert-app/stockalert-backend/pkg/logger"
	"github.com/stockalert-app/stockalert-backend/pkg/metrics"
)

const (
	defaultInterval = time.Minute
	jobName         = "low_stock_watch"
)

// ServiceParams configure the watch service.
type ServiceParams struct {
	Logger   *logger.Logger
	Stock    stock.Service
	Alerts   alerts.Service
	Metrics  *metrics.WatcherMetrics
	Interval time.Duration
}

// Service drives the derivation pipeline on a fixed cadence: derive levels,
// collect low products, hand the batch to the notification engine. A failed
// cycle is logged and counted; the loop always survives to the next tick.
type Service struct {
	logg     *logger.Logger
	stock    stock.Service
	alerts   alerts.Service
	metrics  *metrics.WatcherMetrics
	interval time.Duration
}

// NewService builds a watch service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	if params.Stock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stock service required")
	}
	if params.Alerts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "alerts service required")
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		logg:     params.Logger,
		stock:    params.Stock,
		alerts:   params.Alerts,
		metrics:  params.Metrics,
		interval: interval,
	}, nil
}

// Run starts the watch loop until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = s.logg.WithComponent(ctx, "watch")

	s.runCycle(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "watch service context canceled")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// RunOnce executes a single cycle outside the loop. The API uses it to force
// an immediate check after an append.
func (s *Service) RunOnce(ctx context.Context) error {
	return s.runCycle(s.logg.WithComponent(ctx, "watch"))
}

func (s *Service) runCycle(ctx context.Context) error {
	start := time.Now()
	err := s.cycle(ctx)
	duration := time.Since(start)
	s.metrics.ObserveDuration(jobName, duration)

	cycleCtx := s.logg.WithField(ctx, "duration_ms", duration.Milliseconds())
	if err != nil {
		s.logg.Error(cycleCtx, "watch cycle failed", err)
		s.metrics.IncFailure(jobName)
		return err
	}
	s.metrics.IncSuccess(jobName)
	return nil
}

func (s *Service) cycle(ctx context.Context) error {
	low, err := s.stock.LowStock(ctx)
	if err != nil {
		return err
	}
	if len(low) == 0 {
		return nil
	}

	batchCtx := s.logg.WithField(ctx, "low_products", len(low))
	s.logg.Info(batchCtx, "low stock detected")
	s.alerts.SendLowStockAlert(ctx, low)
	return nil
}
