// Package history is the read-only query engine over the transaction log.
// Everything here is a pure function of its inputs, including the clock: the
// caller passes "now" so views are reproducible.
package history

import (
	"time"

	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
	"github.com/stockalert-app/stockalert-backend/pkg/enums"
)

// Criteria narrows a transaction view. A zero ProductID means no product
// filter; an empty Range means all dates.
type Criteria struct {
	ProductID int64
	Range     enums.DateRange
}

// Filter returns the transactions matching the criteria, preserving input
// order (the store already serves newest-first). The input slice is never
// mutated; an empty result is a valid state, distinct from an empty source
// only by the caller's knowledge of what went in.
func Filter(transactions []models.Transaction, criteria Criteria, now time.Time) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(transactions))

	boundary, bounded := rangeBoundary(criteria.Range, now)

	for _, transaction := range transactions {
		if criteria.ProductID != 0 && transaction.ProductID != criteria.ProductID {
			continue
		}
		if bounded && transaction.Date.Before(boundary) {
			continue
		}
		filtered = append(filtered, transaction)
	}
	return filtered
}

// rangeBoundary resolves a date range to its inclusive lower bound. Today is
// anchored at local calendar midnight; week and month are rolling windows
// from the current instant.
func rangeBoundary(dateRange enums.DateRange, now time.Time) (time.Time, bool) {
	switch dateRange {
	case enums.DateRangeToday:
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case enums.DateRangeWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case enums.DateRangeMonth:
		return now.Add(-30 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}
