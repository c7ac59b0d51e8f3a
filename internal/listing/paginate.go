package listing

// DefaultPageSize applies when a page size below 1 is requested.
const DefaultPageSize = 10

// Page is one page of a list plus the metadata a pager needs.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
	// From and To are the 1-based positions of the first and last item
	// shown, both zero when the page is empty.
	From  int  `json:"from"`
	To    int  `json:"to"`
	Empty bool `json:"empty"`
}

// Paginate slices items to the requested page. The page number is clamped
// into [1, TotalPages], so a page left behind by a shrinking filter lands
// on the last page instead of rendering nothing.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	page = ClampPage(page, totalPages)

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	if start > total {
		start = total
	}

	p := Page[T]{
		Items:      items[start:end:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		Empty:      total == 0,
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	if end > start {
		p.From = start + 1
		p.To = end
	}
	return p
}

// ClampPage bounds page into [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}
