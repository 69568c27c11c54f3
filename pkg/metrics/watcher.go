package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WatcherMetrics records metadata for the low-stock watch cycles.
type WatcherMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewWatcherMetrics registers the watcher metrics on the provided registerer.
func NewWatcherMetrics(reg prometheus.Registerer) *WatcherMetrics {
	if reg == nil {
		return &WatcherMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "watch_cycle_duration_seconds",
		Help:    "Duration of low-stock watch cycles in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "watch_cycle_success",
		Help: "Successful low-stock watch cycles.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "watch_cycle_failure",
		Help: "Failed low-stock watch cycles.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &WatcherMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named job.
func (w *WatcherMetrics) ObserveDuration(job string, duration time.Duration) {
	if w == nil || w.duration == nil {
		return
	}
	w.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (w *WatcherMetrics) IncSuccess(job string) {
	if w == nil || w.success == nil {
		return
	}
	w.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (w *WatcherMetrics) IncFailure(job string) {
	if w == nil || w.failure == nil {
		return
	}
	w.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

func normalizeLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
