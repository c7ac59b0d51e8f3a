package listing

import "sort"

// Row is a list record keyed by field name. Values are scalars: strings,
// numbers or enumerated categories rendered as strings.
type Row map[string]any

// FieldFunc extracts the value of a named field from an item.
type FieldFunc[T any] func(item T, field string) any

// RowField is the FieldFunc for Row.
func RowField(r Row, field string) any {
	return r[field]
}

// Fields returns the row's field names in sorted order.
func (r Row) Fields() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func rowValues(r Row) []any {
	vals := make([]any, 0, len(r))
	for _, v := range r {
		vals = append(vals, v)
	}
	return vals
}
