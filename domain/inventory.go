package domain

import (
	"fmt"
	"time"
)

// DiscardItem records stock written off from the pharmacy store.
type DiscardItem struct {
	ID          int64     `db:"id" json:"id"`
	Item        string    `db:"item" json:"item"`
	Batch       string    `db:"batch" json:"batch"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	Reason      string    `db:"reason" json:"reason"`
	DiscardedOn time.Time `db:"discarded_on" json:"discarded_on"`
}

func (d DiscardItem) Row() map[string]any {
	return map[string]any{
		"id":           fmt.Sprintf("%05d", d.ID),
		"item":         d.Item,
		"batch":        d.Batch,
		"quantity":     d.Quantity,
		"reason":       d.Reason,
		"discarded_on": d.DiscardedOn.Format(DateLayout),
	}
}
