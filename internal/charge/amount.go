// Package charge computes line-item amounts and order totals for the
// registration forms.
package charge

import (
	"github.com/shopspring/decimal"

	"hmis/m/domain"
)

// Overall discount types.
const (
	DiscountPercent = "percent"
	DiscountAmount  = "amount"
)

var hundred = decimal.NewFromInt(100)

// ComputeAmount returns qty*rate less the effective discount, floored at
// zero and rounded to 2 places. A positive absolute discount wins over the
// percentage; the two are never combined.
func ComputeAmount(qty int64, rate, disRs, disPercent float64) float64 {
	gross := decimal.NewFromInt(qty).Mul(decimal.NewFromFloat(rate))

	var discount decimal.Decimal
	if disRs > 0 {
		discount = decimal.NewFromFloat(disRs)
	} else {
		discount = gross.Mul(decimal.NewFromFloat(disPercent)).Div(hundred)
	}

	amount := gross.Sub(discount)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return amount.Round(2).InexactFloat64()
}

// ComputeTotals aggregates committed items and applies the overall
// discount. Any discount type other than DiscountPercent is absolute.
func ComputeTotals(items []domain.LineItem, discountType string, discountValue float64) domain.Totals {
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(decimal.NewFromFloat(it.Amount))
	}
	sub = sub.Round(2)

	value := decimal.NewFromFloat(discountValue)
	discount := value
	if discountType == DiscountPercent {
		discount = sub.Mul(value).Div(hundred)
	}
	discount = discount.Round(2)

	return domain.Totals{
		SubTotal:       sub.InexactFloat64(),
		DiscountAmount: discount.InexactFloat64(),
		GrandTotal:     sub.Sub(discount).Round(2).InexactFloat64(),
	}
}

// Settle splits a payment against the grand total into change returned
// and amount still due.
func Settle(grandTotal, paid float64) domain.Settlement {
	g := decimal.NewFromFloat(grandTotal).Round(2)
	p := decimal.NewFromFloat(paid).Round(2)

	s := domain.Settlement{PaidAmount: p.InexactFloat64()}
	if p.GreaterThanOrEqual(g) {
		s.ChangeReturned = p.Sub(g).InexactFloat64()
	} else {
		s.DueAmount = g.Sub(p).InexactFloat64()
	}
	return s
}

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
