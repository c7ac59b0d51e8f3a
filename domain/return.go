package domain

import (
	"fmt"
	"time"
)

// ItemReturn is a patient return of previously billed items.
type ItemReturn struct {
	ReturnNo   int64     `db:"return_no" json:"return_no"`
	Patient    string    `db:"patient" json:"patient"`
	Amount     float64   `db:"amount" json:"amount"`
	ReturnedOn time.Time `db:"returned_on" json:"returned_on"`
	Status     string    `db:"status" json:"status"`
}

func (r ItemReturn) Row() map[string]any {
	return map[string]any{
		"return_no":   fmt.Sprintf("%06d", r.ReturnNo),
		"patient":     r.Patient,
		"amount":      r.Amount,
		"returned_on": r.ReturnedOn.Format(DateLayout),
		"status":      r.Status,
	}
}
