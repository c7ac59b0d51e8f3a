package domain

import "time"

// OrderKind names the registration form an order was captured on.
type OrderKind string

const (
	KindOPD         OrderKind = "opd"
	KindAppointment OrderKind = "appointment"
	KindRequisition OrderKind = "requisition"
	KindReturn      OrderKind = "return"
)

func (k OrderKind) Valid() bool {
	switch k {
	case KindOPD, KindAppointment, KindRequisition, KindReturn:
		return true
	}
	return false
}

// LineItem is one committed charge row of an order.
type LineItem struct {
	Name             string  `db:"name" json:"name"`
	Rate             float64 `db:"rate" json:"rate"`
	Quantity         int64   `db:"quantity" json:"quantity"`
	DiscountAbsolute float64 `db:"discount_absolute" json:"discount_absolute"`
	DiscountPercent  float64 `db:"discount_percent" json:"discount_percent"`
	Amount           float64 `db:"amount" json:"amount"`
}

// Totals is derived from the line items and the overall discount.
type Totals struct {
	SubTotal       float64 `db:"sub_total" json:"sub_total"`
	DiscountAmount float64 `db:"discount_amount" json:"discount_amount"`
	GrandTotal     float64 `db:"grand_total" json:"grand_total"`
}

type Settlement struct {
	PaidAmount     float64 `db:"paid_amount" json:"paid_amount"`
	DueAmount      float64 `db:"due_amount" json:"due_amount"`
	ChangeReturned float64 `db:"change_returned" json:"change_returned"`
}

// Order is the payload handed to a submission sink.
type Order struct {
	ID            string            `json:"id"`
	Kind          OrderKind         `json:"kind"`
	Header        map[string]string `json:"header"`
	Items         []LineItem        `json:"items"`
	DiscountType  string            `json:"discount_type"`
	DiscountValue float64           `json:"discount_value"`
	Totals        Totals            `json:"totals"`
	Settlement    *Settlement       `json:"settlement,omitempty"`
	CreatedBy     *int64            `json:"created_by,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}
