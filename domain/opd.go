package domain

import (
	"fmt"
	"time"
)

// OPDVisit is an outpatient registration.
type OPDVisit struct {
	OPDNo     int64     `db:"opd_no" json:"opd_no"`
	Patient   string    `db:"patient" json:"patient"`
	Age       int       `db:"age" json:"age"`
	Gender    string    `db:"gender" json:"gender"`
	Doctor    string    `db:"doctor" json:"doctor"`
	VisitedAt time.Time `db:"visited_at" json:"visited_at"`
	Fee       float64   `db:"fee" json:"fee"`
	Status    string    `db:"status" json:"status"`
}

func (v OPDVisit) Row() map[string]any {
	return map[string]any{
		"opd_no":     fmt.Sprintf("%08d", v.OPDNo),
		"patient":    v.Patient,
		"age":        v.Age,
		"gender":     v.Gender,
		"doctor":     v.Doctor,
		"visit_date": v.VisitedAt.Format(DateTimeLayout),
		"fee":        v.Fee,
		"status":     v.Status,
	}
}
