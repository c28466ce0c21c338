package helpers

import (
	"fmt"
	"net/http"
	"strconv"

	"usermanagement/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultSkip  = 0
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParsePagination reads skip and limit from the request query string.
// Missing values fall back to defaults and limit is capped at MaxLimit.
// Non-numeric values are rejected; range checks are left to the service.
func ParsePagination(r *http.Request) (domain.PaginationParams, error) {
	params := domain.PaginationParams{Skip: DefaultSkip, Limit: DefaultLimit}
	q := r.URL.Query()
	if s := q.Get("skip"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return params, fmt.Errorf("skip must be an integer")
		}
		params.Skip = v
	}
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return params, fmt.Errorf("limit must be an integer")
		}
		params.Limit = min(v, MaxLimit)
	}
	return params, nil
}

// ListPage is the data payload of a paginated list response.
// swagger:model ListPage
type ListPage[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

// NewListPage builds a ListPage; Page is derived from the skip/limit window and Size is the number of items returned.
func NewListPage[T any](items []T, total int, params domain.PaginationParams) ListPage[T] {
	if items == nil {
		items = []T{}
	}
	return ListPage[T]{
		Items: items,
		Total: total,
		Page:  params.Page(),
		Size:  len(items),
	}
}
