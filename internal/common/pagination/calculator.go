package pagination

// Offset calculates the slice offset for a 1-based page number.
//
// Formula: offset = (page - 1) * perPage
//
// Examples:
//   - Page 1, PerPage 20 -> Offset 0
//   - Page 2, PerPage 20 -> Offset 20
//   - Page 3, PerPage 10 -> Offset 20
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// LastPage calculates the last page number for a total item count.
// Uses ceiling division and never returns less than 1, so an empty
// collection still has a valid single (empty) page.
//
// Examples:
//   - Total 0, PerPage 20 -> 1
//   - Total 20, PerPage 20 -> 1
//   - Total 21, PerPage 20 -> 2
func LastPage(total, perPage int) int {
	if total == 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// Window returns the [start, end) bounds of a page within a collection
// of the given total size. Page is clamped to at least 1 but has no
// upper clamp: requesting a page past the last one yields an empty
// window rather than an error.
func Window(page, perPage, total int) (start, end int) {
	if page < 1 {
		page = 1
	}
	start = Offset(page, perPage)
	if start > total {
		return total, total
	}
	end = start + perPage
	if end > total {
		end = total
	}
	return start, end
}
