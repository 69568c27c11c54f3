package metrics

import "github.com/prometheus/client_golang/prometheus"

// LedgerMetrics counts ledger appends and the failure signals the error
// taxonomy says must be surfaced rather than swallowed.
type LedgerMetrics struct {
	appended   *prometheus.CounterVec
	storage    prometheus.Counter
	mismatches prometheus.Counter
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	appended := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_appended_total",
		Help: "Transactions appended to the log, by type.",
	}, []string{"type"})
	storage := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storage_failures_total",
		Help: "Durable writes or reads that failed.",
	})
	mismatches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "derivation_mismatches_total",
		Help: "Chain invariant violations detected during stock derivation.",
	})
	reg.MustRegister(appended, storage, mismatches)
	return &LedgerMetrics{
		appended:   appended,
		storage:    storage,
		mismatches: mismatches,
	}
}

// IncAppended increments the append counter for a transaction type.
func (l *LedgerMetrics) IncAppended(txType string) {
	if l == nil || l.appended == nil {
		return
	}
	l.appended.WithLabelValues(normalizeLabel(txType)).Inc()
}

// IncStorageFailure increments the storage failure counter.
func (l *LedgerMetrics) IncStorageFailure() {
	if l == nil || l.storage == nil {
		return
	}
	l.storage.Inc()
}

// IncMismatch increments the derivation mismatch counter.
func (l *LedgerMetrics) IncMismatch() {
	if l == nil || l.mismatches == nil {
		return
	}
	l.mismatches.Inc()
}

// AlertMetrics counts dispatched and suppressed low-stock alerts.
type AlertMetrics struct {
	dispatched prometheus.Counter
	suppressed *prometheus.CounterVec
}

// NewAlertMetrics registers the alert metrics on the provided registerer.
func NewAlertMetrics(reg prometheus.Registerer) *AlertMetrics {
	if reg == nil {
		return &AlertMetrics{}
	}
	dispatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alerts_dispatched_total",
		Help: "Low-stock alerts handed to the platform notifier.",
	})
	suppressed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alerts_suppressed_total",
		Help: "Low-stock alerts suppressed, by reason.",
	}, []string{"reason"})
	reg.MustRegister(dispatched, suppressed)
	return &AlertMetrics{
		dispatched: dispatched,
		suppressed: suppressed,
	}
}

// IncDispatched increments the dispatched alerts counter.
func (a *AlertMetrics) IncDispatched() {
	if a == nil || a.dispatched == nil {
		return
	}
	a.dispatched.Inc()
}

// IncSuppressed increments the suppressed alerts counter for a reason.
func (a *AlertMetrics) IncSuppressed(reason string) {
	if a == nil || a.suppressed == nil {
		return
	}
	a.suppressed.WithLabelValues(normalizeLabel(reason)).Inc()
}
