package listing

import (
	"slices"
	"strings"
)

// SortSpec is a single sort directive.
type SortSpec struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSort parses a sort parameter such as "-date,name": date descending,
// then name ascending. A leading "-" marks a descending key.
func ParseSort(param string) []SortSpec {
	if strings.TrimSpace(param) == "" {
		return nil
	}

	parts := strings.Split(param, ",")
	specs := make([]SortSpec, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		spec := SortSpec{Field: part}
		if strings.HasPrefix(part, "-") {
			spec.Descending = true
			spec.Field = strings.TrimSpace(part[1:])
		}
		if spec.Field != "" {
			specs = append(specs, spec)
		}
	}
	return specs
}

// FormatSort is the inverse of ParseSort.
func FormatSort(specs []SortSpec) string {
	parts := make([]string, 0, len(specs))
	for _, s := range specs {
		if s.Descending {
			parts = append(parts, "-"+s.Field)
		} else {
			parts = append(parts, s.Field)
		}
	}
	return strings.Join(parts, ",")
}

// Sort returns a stably sorted copy of items. Descending keys negate the
// ascending comparison, so ties keep their input order in both directions.
// Without specs the copy keeps input order.
func (e *Engine[T]) Sort(items []T, specs ...SortSpec) []T {
	out := slices.Clone(items)
	if len(specs) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		for _, s := range specs {
			c := e.comparator(s.Field)(e.field(a, s.Field), e.field(b, s.Field))
			if s.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

func (e *Engine[T]) comparator(field string) Comparator {
	if c, ok := e.cfg.Comparators[field]; ok && c != nil {
		return c
	}
	return Compare
}
