package domain

import (
	"fmt"
	"time"
)

// Requisition is a department's request for store items.
type Requisition struct {
	ReqNo       int64     `db:"req_no" json:"req_no"`
	Department  string    `db:"department" json:"department"`
	ItemCount   int       `db:"item_count" json:"item_count"`
	RequestedOn time.Time `db:"requested_on" json:"requested_on"`
	Status      string    `db:"status" json:"status"`
}

func (r Requisition) Row() map[string]any {
	return map[string]any{
		"req_no":       fmt.Sprintf("REQ-%04d", r.ReqNo),
		"department":   r.Department,
		"item_count":   r.ItemCount,
		"requested_on": r.RequestedOn.Format(DateLayout),
		"status":       r.Status,
	}
}
