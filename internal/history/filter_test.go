package history

import (
	"testing"
	"time"

	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
	"github.com/stockalert-app/stockalert-backend/pkg/enums"
)

func tx(id, productID int64, at time.Time) models.Transaction {
	return models.Transaction{
		ID:        id,
		ProductID: productID,
		Type:      enums.TransactionTypeSale,
		Quantity:  1,
		Date:      at,
		Timestamp: at.UnixMilli(),
	}
}

func TestFilter_NoCriteriaReturnsEverythingInOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	input := []models.Transaction{
		tx(3, 1, now.Add(-time.Hour)),
		tx(2, 2, now.Add(-2*time.Hour)),
		tx(1, 1, now.Add(-3*time.Hour)),
	}

	got := Filter(input, Criteria{}, now)
	if len(got) != 3 {
		t.Fatalf("expected all 3 transactions, got %d", len(got))
	}
	for i := range input {
		if got[i].ID != input[i].ID {
			t.Fatalf("order not preserved at index %d", i)
		}
	}
}

func TestFilter_ByProduct(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	input := []models.Transaction{
		tx(3, 1, now.Add(-time.Hour)),
		tx(2, 2, now.Add(-2*time.Hour)),
		tx(1, 1, now.Add(-3*time.Hour)),
	}

	got := Filter(input, Criteria{ProductID: 2}, now)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only transaction 2, got %v", got)
	}
}

func TestFilter_TodayIsMidnightInclusive(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	input := []models.Transaction{
		tx(3, 1, now.Add(-time.Minute)),
		tx(2, 1, midnight),
		tx(1, 1, midnight.Add(-time.Second)),
	}

	got := Filter(input, Criteria{Range: enums.DateRangeToday}, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions from midnight onward, got %d", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 2 {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestFilter_WeekAndMonthWindows(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	input := []models.Transaction{
		tx(4, 1, now.Add(-24*time.Hour)),
		tx(3, 1, now.Add(-6*24*time.Hour)),
		tx(2, 1, now.Add(-8*24*time.Hour)),
		tx(1, 1, now.Add(-31*24*time.Hour)),
	}

	week := Filter(input, Criteria{Range: enums.DateRangeWeek}, now)
	if len(week) != 2 {
		t.Fatalf("expected 2 transactions in the last 7 days, got %d", len(week))
	}

	month := Filter(input, Criteria{Range: enums.DateRangeMonth}, now)
	if len(month) != 3 {
		t.Fatalf("expected 3 transactions in the last 30 days, got %d", len(month))
	}
}

func TestFilter_IsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	input := []models.Transaction{
		tx(3, 1, now.Add(-time.Hour)),
		tx(2, 2, now.Add(-2*time.Hour)),
		tx(1, 1, now.Add(-50*time.Hour)),
	}
	criteria := Criteria{ProductID: 1, Range: enums.DateRangeToday}

	once := Filter(input, criteria, now)
	twice := Filter(once, criteria, now)
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("filter not idempotent at index %d", i)
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	input := []models.Transaction{
		tx(2, 1, now.Add(-time.Hour)),
		tx(1, 2, now.Add(-2*time.Hour)),
	}

	Filter(input, Criteria{ProductID: 2}, now)

	if input[0].ID != 2 || input[1].ID != 1 {
		t.Fatalf("input slice was mutated: %v", input)
	}
}

func TestFilter_EmptySource(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	got := Filter(nil, Criteria{Range: enums.DateRangeWeek}, now)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", got)
	}
}
