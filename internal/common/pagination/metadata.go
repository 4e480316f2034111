package pagination

// Meta contains pagination metadata included in list responses.
// The shape matches the CMS wire format: from/to are 1-based item
// indices and are null when the page is empty.
type Meta struct {
	CurrentPage int  `json:"current_page"` // Current page number (1-based)
	LastPage    int  `json:"last_page"`    // Last page number (>= 1 even when total is 0)
	PerPage     int  `json:"per_page"`     // Items per page
	Total       int  `json:"total"`        // Total items across all pages
	From        *int `json:"from"`         // Index of the first item on this page, null if empty
	To          *int `json:"to"`           // Index of the last item on this page, null if empty
}

// Links contains the navigation URLs of a list response. The snapshot
// backend has no URL space to link into, so all four may be null.
type Links struct {
	First *string `json:"first"`
	Last  *string `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}
