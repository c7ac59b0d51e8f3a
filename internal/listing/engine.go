// Package listing implements the search, sort and pagination pipeline
// shared by every list view.
package listing

// Config declares how a list is searched and sorted.
type Config struct {
	// Searchable names the fields matched by Filter. An empty list on a
	// Row engine searches every field.
	Searchable []string
	// Comparators overrides the default Compare policy per field.
	Comparators map[string]Comparator
}

// Query is one request against a list.
type Query struct {
	Search   string
	Sort     []SortSpec
	Page     int
	PageSize int
}

// Engine filters, sorts and paginates items of type T.
type Engine[T any] struct {
	field  FieldFunc[T]
	values func(T) []any
	cfg    Config
}

func New[T any](field FieldFunc[T], cfg Config) *Engine[T] {
	return &Engine[T]{field: field, cfg: cfg}
}

func NewRowEngine(cfg Config) *Engine[Row] {
	e := New(RowField, cfg)
	e.values = rowValues
	return e
}

// Query runs filter, sort and paginate in that order.
func (e *Engine[T]) Query(items []T, q Query) Page[T] {
	return Paginate(e.Sort(e.Filter(items, q.Search), q.Sort...), q.Page, q.PageSize)
}
