package charge

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"hmis/m/domain"
)

// Calculator holds the pending input row and the committed line items of
// one order form. Every setter recomputes the pending amount; totals are
// derived on demand and never stored.
//
// A Calculator is not safe for concurrent use.
type Calculator struct {
	pending       domain.LineItem
	items         []domain.LineItem
	discountType  string
	discountValue float64
}

func NewCalculator() *Calculator {
	return &Calculator{discountType: DiscountPercent}
}

func (c *Calculator) SetName(name string) {
	c.pending.Name = name
}

func (c *Calculator) SetRate(rate float64) {
	c.pending.Rate = rate
	c.recompute()
}

func (c *Calculator) SetQuantity(qty int64) {
	c.pending.Quantity = qty
	c.recompute()
}

func (c *Calculator) SetDiscountAbsolute(v float64) {
	c.pending.DiscountAbsolute = v
	c.recompute()
}

func (c *Calculator) SetDiscountPercent(v float64) {
	c.pending.DiscountPercent = v
	c.recompute()
}

// SetPending replaces every pending input at once.
func (c *Calculator) SetPending(li domain.LineItem) {
	c.pending = li
	c.recompute()
}

func (c *Calculator) Pending() domain.LineItem {
	return c.pending
}

// Commit validates the pending row and prepends a snapshot of it to the
// committed items, most recent first. The pending inputs are then reset.
func (c *Calculator) Commit() (domain.LineItem, error) {
	if err := validate(c.pending); err != nil {
		return domain.LineItem{}, err
	}
	c.recompute()
	item := c.pending
	item.Name = strings.TrimSpace(item.Name)
	c.items = slices.Insert(c.items, 0, item)
	c.pending = domain.LineItem{}
	return item, nil
}

// Remove deletes the committed item at index.
func (c *Calculator) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return invalid("index", "no line item at that position")
	}
	c.items = slices.Delete(c.items, index, index+1)
	return nil
}

// Items returns a copy of the committed line items.
func (c *Calculator) Items() []domain.LineItem {
	return slices.Clone(c.items)
}

// SetOverallDiscount sets the order-level discount.
func (c *Calculator) SetOverallDiscount(discountType string, value float64) error {
	if value < 0 {
		return invalid("discount_value", "must not be negative")
	}
	if discountType == "" {
		discountType = DiscountPercent
	}
	if discountType == DiscountPercent && value > 100 {
		return invalid("discount_value", "percent must be at most 100")
	}
	c.discountType = discountType
	c.discountValue = value
	return nil
}

func (c *Calculator) Discount() (string, float64) {
	return c.discountType, c.discountValue
}

func (c *Calculator) Totals() domain.Totals {
	return ComputeTotals(c.items, c.discountType, c.discountValue)
}

// Order builds the submission payload from the current state.
func (c *Calculator) Order(kind domain.OrderKind, header map[string]string) (*domain.Order, error) {
	if len(c.items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !kind.Valid() {
		return nil, invalid("kind", "unknown order kind")
	}
	h := make(map[string]string, len(header))
	for k, v := range header {
		h[k] = v
	}
	return &domain.Order{
		ID:            uuid.NewString(),
		Kind:          kind,
		Header:        h,
		Items:         c.Items(),
		DiscountType:  c.discountType,
		DiscountValue: c.discountValue,
		Totals:        c.Totals(),
		CreatedAt:     time.Now().UTC(),
	}, nil
}

func (c *Calculator) recompute() {
	p := &c.pending
	p.Amount = ComputeAmount(p.Quantity, p.Rate, p.DiscountAbsolute, p.DiscountPercent)
}

func validate(li domain.LineItem) error {
	switch {
	case strings.TrimSpace(li.Name) == "":
		return invalid("name", "is required")
	case li.Rate <= 0:
		return invalid("rate", "must be greater than zero")
	case li.Quantity <= 0:
		return invalid("quantity", "must be greater than zero")
	case li.DiscountAbsolute < 0:
		return invalid("discount_absolute", "must not be negative")
	case li.DiscountPercent < 0 || li.DiscountPercent > 100:
		return invalid("discount_percent", "must be between 0 and 100")
	}
	return nil
}
