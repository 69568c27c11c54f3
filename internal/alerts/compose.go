package alerts

import (
	"fmt"
	"strings"

	"github.com/stockalert-app/stockalert-backend/internal/stock"
)

const (
	// DefaultIcon and DefaultBadge are the shell assets shown on every
	// alert unless the caller overrides them.
	DefaultIcon  = "/logo192.png"
	DefaultBadge = "/logo192.png"
)

// Compose builds the low-stock alert title and body. One product gets a
// singular title naming it and a body with its numeric level; a batch gets a
// count-prefixed title and a body naming the first maxNamed products in input
// order, with a remainder count when the batch is larger.
func Compose(low []stock.Level, maxNamed int) (string, string) {
	if len(low) == 0 {
		return "", ""
	}
	if maxNamed < 1 {
		maxNamed = 1
	}

	if len(low) == 1 {
		title := fmt.Sprintf("Low stock: %s", low[0].Name)
		body := fmt.Sprintf("%s - Stock: %d", low[0].Name, low[0].Stock)
		return title, body
	}

	named := low
	if len(named) > maxNamed {
		named = named[:maxNamed]
	}
	names := make([]string, 0, len(named))
	for _, level := range named {
		names = append(names, level.Name)
	}

	title := fmt.Sprintf("%d products low on stock", len(low))
	body := strings.Join(names, ", ")
	if remainder := len(low) - maxNamed; remainder > 0 {
		body = fmt.Sprintf("%s and %d more", body, remainder)
	}
	return title, body
}
