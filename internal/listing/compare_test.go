package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"display dates", "02 Jan 2024", "15 Dec 2023", 1},
		{"iso dates", "2023-12-15", "2024-01-02", -1},
		{"date time", "02 Jan 2024, 09:15 AM", "02 Jan 2024, 01:00 PM", -1},
		{"clock times", "11:30 AM", "02:00 PM", -1},
		{"ints", 10, 9, 1},
		{"mixed numeric kinds", int64(3), 3.0, 0},
		{"float order", 99.5, 100.25, -1},
		{"numeric id strings", "10", "2", 1},
		{"zero padded ids", "00012", "00003", 1},
		{"prefixed ids", "APT00009", "APT00010", -1},
		{"case insensitive text", "bob", "Amy", 1},
		{"equal ignoring case", "Cardiology", "cardiology", 0},
		{"nil sorts first", nil, "a", -1},
		{"long digit strings are numbers", "1234567890123", "2", 1},
		{"decimal strings", "350.00", "1200.50", -1},
		{"decimal against int", "90.25", 90, 1},
		{"negative decimal strings", "-5.5", "2", -1},
		{"nan is text", "NaN", "Inf", 1},
		{"two digit runs are text", "Ward 1 Bed 9", "Ward 1 Bed 10", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.a, tt.b)
			assert.Equal(t, tt.want, sign(got), "Compare(%v, %v) = %d", tt.a, tt.b, got)
		})
	}
}

func TestSort_DecimalStrings(t *testing.T) {
	e := NewRowEngine(Config{})
	rows := []Row{{"amount": "350.00"}, {"amount": "1200.50"}, {"amount": "90.25"}}

	got := e.Sort(rows, SortSpec{Field: "amount"})
	assert.Equal(t, []any{"90.25", "350.00", "1200.50"}, []any{got[0]["amount"], got[1]["amount"], got[2]["amount"]})

	got = e.Sort(rows, SortSpec{Field: "amount", Descending: true})
	assert.Equal(t, "1200.50", got[0]["amount"])
}

func TestRankComparator(t *testing.T) {
	cmp := RankComparator("Scheduled", "Checked-In", "Completed", "Cancelled")

	assert.Negative(t, cmp("Scheduled", "Completed"))
	assert.Positive(t, cmp("cancelled", "checked-in"))
	assert.Zero(t, cmp("Completed", "completed"))
	assert.Negative(t, cmp("Completed", "No-Show"), "ranked values sort before unknown ones")
	assert.Negative(t, cmp("Archived", "No-Show"), "unknown values fall back to text order")
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
