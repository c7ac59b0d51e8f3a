package charge

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"hmis/m/domain"
)

func TestComputeAmount(t *testing.T) {
	tests := []struct {
		name                string
		qty                 int64
		rate, disRs, disPct float64
		want                float64
	}{
		{"percent discount", 2, 100, 0, 10, 180},
		{"absolute wins over percent", 2, 100, 30, 10, 170},
		{"zero quantity", 0, 100, 0, 0, 0},
		{"no discount", 3, 45.5, 0, 0, 136.5},
		{"floored at zero", 1, 100, 150, 0, 0},
		{"full percent", 4, 25, 0, 100, 0},
		{"rounds half away from zero", 3, 3.335, 0, 0, 10.01},
		{"fractional percent", 1, 99.99, 0, 12.5, 87.49},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeAmount(tt.qty, tt.rate, tt.disRs, tt.disPct))
		})
	}
}

func TestComputeAmount_NeverNegative(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		qty := r.Int63n(50)
		rate := float64(r.Intn(100000)) / 100
		disRs := 0.0
		if r.Intn(2) == 0 {
			disRs = float64(r.Intn(1000000)) / 100
		}
		disPct := float64(r.Intn(10001)) / 100
		got := ComputeAmount(qty, rate, disRs, disPct)
		assert.GreaterOrEqual(t, got, 0.0, "qty=%d rate=%v disRs=%v disPct=%v", qty, rate, disRs, disPct)
	}
}

func TestComputeTotals(t *testing.T) {
	got := ComputeTotals([]domain.LineItem{{Amount: 100}}, DiscountPercent, 10)
	assert.Equal(t, domain.Totals{SubTotal: 100, DiscountAmount: 10, GrandTotal: 90}, got)

	items := []domain.LineItem{{Amount: 10.1}, {Amount: 20.2}, {Amount: 0.05}}
	got = ComputeTotals(items, DiscountAmount, 5)
	assert.Equal(t, domain.Totals{SubTotal: 30.35, DiscountAmount: 5, GrandTotal: 25.35}, got)

	got = ComputeTotals(items, "flat", 0.35)
	assert.Equal(t, 30.0, got.GrandTotal, "unknown types are absolute")

	got = ComputeTotals(items, DiscountPercent, 12.5)
	assert.Equal(t, 3.79, got.DiscountAmount)
	assert.Equal(t, 26.56, got.GrandTotal)

	assert.Equal(t, domain.Totals{}, ComputeTotals(nil, DiscountPercent, 10))
}

func TestComputeTotals_AbsoluteDiscountOverSubtotal(t *testing.T) {
	items := []domain.LineItem{{Amount: 100}}
	got := ComputeTotals(items, DiscountAmount, 150)
	assert.Equal(t, domain.Totals{SubTotal: 100, DiscountAmount: 150, GrandTotal: -50}, got)

	s := Settle(got.GrandTotal, 0)
	assert.Equal(t, 50.0, s.ChangeReturned)
	assert.Zero(t, s.DueAmount)
}

func TestSettle(t *testing.T) {
	assert.Equal(t, domain.Settlement{PaidAmount: 500, ChangeReturned: 49.5}, Settle(450.5, 500))
	assert.Equal(t, domain.Settlement{PaidAmount: 200, DueAmount: 250.5}, Settle(450.5, 200))
	assert.Equal(t, domain.Settlement{PaidAmount: 90}, Settle(90, 90))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, -1.01, Round2(-1.005))
	assert.Equal(t, 2.0, Round2(1.999))
}
