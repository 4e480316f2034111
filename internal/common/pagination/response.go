package pagination

// Response is a generic paginated response wrapper matching the CMS
// envelope: a data array plus pagination meta and navigation links.
type Response[T any] struct {
	Data  []T   `json:"data"`
	Meta  Meta  `json:"meta"`
	Links Links `json:"links"`
}

// Paginate slices items down to the requested page and builds the full
// response envelope. perPage and page are clamped to at least 1; a page
// beyond the last yields empty data, not an error.
func Paginate[T any](items []T, page, perPage int) Response[T] {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	start, end := Window(page, perPage, total)
	window := items[start:end]

	meta := Meta{
		CurrentPage: page,
		LastPage:    LastPage(total, perPage),
		PerPage:     perPage,
		Total:       total,
	}
	if len(window) > 0 {
		from := start + 1
		to := start + len(window)
		meta.From = &from
		meta.To = &to
	}

	// Copy so callers cannot mutate the source slice through the response.
	data := make([]T, len(window))
	copy(data, window)

	return Response[T]{Data: data, Meta: meta}
}
