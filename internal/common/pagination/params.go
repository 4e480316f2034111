package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
// Zero values mean "not supplied"; the content layer picks its own
// defaults (the snapshot file's per_page, or 100).
type Params struct {
	Page    int // 1-based page number, 0 if absent
	PerPage int // Items per page, 0 if absent
}

// ParseQueryParams parses page/per_page from the request query string.
// Absent parameters stay zero. Returns an error for non-positive or
// non-numeric values.
func ParseQueryParams(r *http.Request, maxPerPage int) (Params, error) {
	var params Params

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		perPage, err := strconv.Atoi(perPageStr)
		if err != nil || perPage < 1 || perPage > maxPerPage {
			return params, fmt.Errorf("invalid query parameter: per_page must be between 1 and %d", maxPerPage)
		}
		params.PerPage = perPage
	}

	return params, nil
}
