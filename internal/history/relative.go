package history

import (
	"fmt"
	"time"
)

const (
	millisPerMinute = 60_000
	millisPerHour   = 3_600_000
	millisPerDay    = 86_400_000
)

// RelativeLabel renders a transaction instant relative to now, falling back
// to an absolute date once the event is a week old. Thresholds are half-open
// and computed by floor division of elapsed milliseconds.
func RelativeLabel(date, now time.Time) string {
	diffMs := now.Sub(date).Milliseconds()
	diffMins := diffMs / millisPerMinute
	diffHours := diffMs / millisPerHour
	diffDays := diffMs / millisPerDay

	switch {
	case diffMins < 1:
		return "just now"
	case diffMins < 60:
		return fmt.Sprintf("%d min ago", diffMins)
	case diffHours < 24:
		return fmt.Sprintf("%dh ago", diffHours)
	case diffDays < 7:
		return fmt.Sprintf("%dd ago", diffDays)
	default:
		return date.Format("Jan 02, 15:04")
	}
}
