package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/stockalert-app/stockalert-backend/pkg/errors"
)

// ParseQueryInt reads an optional integer query parameter, returning
// defaultVal when the parameter is absent or blank.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be an integer").
			WithDetails(map[string]any{"field": key, "value": raw})
	}
	if value < int64(min) || value > int64(max) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return int(value), nil
}
