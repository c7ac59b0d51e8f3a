package listing

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Comparator orders two field values. It returns a negative number when a
// sorts before b, zero when they tie and a positive number otherwise.
type Comparator func(a, b any) int

// maxNumericIDLen bounds how long a string may be and still be treated as
// a numeric identifier such as a zero-padded registration number.
const maxNumericIDLen = 12

// timeLayouts are the date/time display formats recognized when sorting.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02 Jan 2006, 03:04 PM",
	"02 Jan 2006 03:04 PM",
	"02 Jan 2006",
	"Jan 2, 2006",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
	"03:04 PM",
	"15:04",
}

// Compare applies the default policy: timestamps, then numbers (numeric
// kinds or decimal strings such as "350.00"), then numeric identifiers,
// then case-insensitive text.
func Compare(a, b any) int {
	as, aStr := a.(string)
	bs, bStr := b.(string)

	if aStr && bStr {
		if ta, ok := parseTime(as); ok {
			if tb, ok := parseTime(bs); ok {
				return ta.Compare(tb)
			}
		}
	}

	if fa, ok := toNumber(a); ok {
		if fb, ok := toNumber(b); ok {
			return cmpFloat(fa, fb)
		}
	}

	if aStr && bStr {
		if na, ok := numericID(as); ok {
			if nb, ok := numericID(bs); ok {
				return na.Cmp(nb)
			}
		}
	}

	return strings.Compare(strings.ToLower(text(a)), strings.ToLower(text(b)))
}

// RankComparator orders values by their position in ranks. Unknown values
// sort after every ranked one and fall back to Compare among themselves.
func RankComparator(ranks ...string) Comparator {
	pos := make(map[string]int, len(ranks))
	for i, r := range ranks {
		pos[strings.ToLower(r)] = i
	}
	return func(a, b any) int {
		ra, okA := pos[strings.ToLower(text(a))]
		rb, okB := pos[strings.ToLower(text(b))]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		}
		return Compare(a, b)
	}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		return parseDecimal(n)
	}
	return 0, false
}

// parseDecimal accepts strings holding a finite number, as CSV and SQL
// text columns deliver amounts.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// numericID reports whether s looks like a numeric identifier: at most
// maxNumericIDLen characters with a single contiguous run of digits, as in
// "00012", "APT00012" or "REQ-0010". The digits are returned as a number.
func numericID(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxNumericIDLen {
		return nil, false
	}
	var (
		digits strings.Builder
		runs   int
		inRun  bool
	)
	for _, r := range s {
		if unicode.IsDigit(r) {
			if !inRun {
				runs++
				inRun = true
			}
			digits.WriteRune(r)
			continue
		}
		inRun = false
	}
	if runs != 1 {
		return nil, false
	}
	n, ok := new(big.Int).SetString(digits.String(), 10)
	return n, ok
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
