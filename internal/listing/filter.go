package listing

import (
	"strings"
)

// Filter keeps items where at least one searchable field contains term,
// ignoring case. A blank term returns items as given.
func (e *Engine[T]) Filter(items []T, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if e.matches(item, term) {
			out = append(out, item)
		}
	}
	return out
}

func (e *Engine[T]) matches(item T, term string) bool {
	if len(e.cfg.Searchable) == 0 && e.values != nil {
		for _, v := range e.values(item) {
			if strings.Contains(strings.ToLower(text(v)), term) {
				return true
			}
		}
		return false
	}
	for _, f := range e.cfg.Searchable {
		if strings.Contains(strings.ToLower(text(e.field(item, f))), term) {
			return true
		}
	}
	return false
}
