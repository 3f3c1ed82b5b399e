// Package pagination parses offset pagination from query strings.
package pagination

import (
	"net/url"
	"strconv"

	"github.com/skywebdev/server/internal/domain"
)

// Parse reads page and limit query parameters, falling back to page 1 and
// defaultLimit. Out-of-range values are clamped rather than rejected.
func Parse(query url.Values, defaultLimit int) domain.Page {
	page := intParam(query, "page", 1)
	limit := intParam(query, "limit", defaultLimit)
	return domain.NewPage(page, limit, defaultLimit)
}

func intParam(query url.Values, key string, fallback int) int {
	raw := query.Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
