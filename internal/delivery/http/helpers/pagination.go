package helpers

import (
	"fmt"
	"net/http"
	"strconv"

	"eventdiscovery/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParsePagination reads limit and offset from the query string. Missing values
// fall back to defaults and limit is clamped to MaxLimit; malformed or negative
// values are rejected.
func ParsePagination(r *http.Request) (domain.PaginationParams, error) {
	p := domain.PaginationParams{Limit: DefaultLimit}
	q := r.URL.Query()
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return p, fmt.Errorf("wrong limit")
		}
		p.Limit = min(v, MaxLimit)
	}
	if s := q.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return p, fmt.Errorf("wrong offset")
		}
		p.Offset = v
	}
	return p, nil
}
