package enums

import "fmt"

// DateRange is the history filter bucket selected by the UI.
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

var validDateRanges = []DateRange{
	DateRangeAll,
	DateRangeToday,
	DateRangeWeek,
	DateRangeMonth,
}

// IsValid reports whether the value matches the canonical date range enum.
func (d DateRange) IsValid() bool {
	for _, candidate := range validDateRanges {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDateRange converts the raw string to DateRange. The empty string maps
// to DateRangeAll, matching the "no filter" default.
func ParseDateRange(value string) (DateRange, error) {
	if value == "" {
		return DateRangeAll, nil
	}
	for _, candidate := range validDateRanges {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid date range %q", value)
}
