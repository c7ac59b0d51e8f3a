package domain

import (
	"fmt"
	"time"
)

// Appointment statuses, in workflow order.
const (
	StatusScheduled = "Scheduled"
	StatusCheckedIn = "Checked-In"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

type Appointment struct {
	ID         int64     `db:"id" json:"id"`
	Patient    string    `db:"patient" json:"patient"`
	Doctor     string    `db:"doctor" json:"doctor"`
	Department string    `db:"department" json:"department"`
	At         time.Time `db:"at" json:"at"`
	Status     string    `db:"status" json:"status"`
}

func (a Appointment) Row() map[string]any {
	return map[string]any{
		"id":         fmt.Sprintf("APT%05d", a.ID),
		"patient":    a.Patient,
		"doctor":     a.Doctor,
		"department": a.Department,
		"date":       a.At.Format(DateLayout),
		"time":       a.At.Format(TimeLayout),
		"status":     a.Status,
	}
}
