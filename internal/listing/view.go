package listing

import (
	"slices"
	"sync"
)

// View holds the interactive state of one list: search term, sort key,
// current page and page size. The filtered and sorted set is memoized
// until one of its inputs changes, so paging and repeated reads do not
// recompute it. A View is safe for concurrent use.
type View[T any] struct {
	mu       sync.Mutex
	engine   *Engine[T]
	rows     []T
	search   string
	sort     []SortSpec
	page     int
	pageSize int

	processed []T
	fresh     bool
}

// ViewState is a snapshot of a View's inputs.
type ViewState struct {
	Search   string `json:"search"`
	Sort     string `json:"sort"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

func NewView[T any](engine *Engine[T], rows []T, pageSize int) *View[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &View[T]{engine: engine, rows: rows, page: 1, pageSize: pageSize}
}

// SetRows replaces the underlying data, keeping search, sort and page.
func (v *View[T]) SetRows(rows []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = rows
	v.fresh = false
}

// SetSearch changes the search term and returns to page 1.
func (v *View[T]) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if term == v.search {
		return
	}
	v.search = term
	v.page = 1
	v.fresh = false
}

// SetPageSize changes the page size and returns to page 1.
func (v *View[T]) SetPageSize(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 1 {
		n = DefaultPageSize
	}
	if n == v.pageSize {
		return
	}
	v.pageSize = n
	v.page = 1
}

// ToggleSort sorts by key. Selecting the current key again flips its
// direction; a new key starts ascending. Either way the view returns to
// page 1.
func (v *View[T]) ToggleSort(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := SortSpec{Field: key}
	if len(v.sort) == 1 && v.sort[0].Field == key {
		next.Descending = !v.sort[0].Descending
	}
	v.sort = []SortSpec{next}
	v.page = 1
	v.fresh = false
}

// SetSort replaces the sort keys and returns to page 1.
func (v *View[T]) SetSort(specs ...SortSpec) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = slices.Clone(specs)
	v.page = 1
	v.fresh = false
}

// SetPage moves to page n, clamped into the current page range.
func (v *View[T]) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	total := len(v.current())
	v.page = ClampPage(n, (total+v.pageSize-1)/v.pageSize)
}

// Result returns the current page. The stored page number is clamped if
// the data shrank underneath it.
func (v *View[T]) Result() Page[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := Paginate(v.current(), v.page, v.pageSize)
	v.page = p.Page
	return p
}

func (v *View[T]) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state()
}

// Snapshot returns the current page together with the state that produced
// it, read under one lock.
func (v *View[T]) Snapshot() (ViewState, Page[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := Paginate(v.current(), v.page, v.pageSize)
	v.page = p.Page
	return v.state(), p
}

func (v *View[T]) state() ViewState {
	return ViewState{
		Search:   v.search,
		Sort:     FormatSort(v.sort),
		Page:     v.page,
		PageSize: v.pageSize,
	}
}

func (v *View[T]) current() []T {
	if !v.fresh {
		v.processed = v.engine.Sort(v.engine.Filter(v.rows, v.search), v.sort...)
		v.fresh = true
	}
	return v.processed
}
