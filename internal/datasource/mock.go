package datasource

import (
	"fmt"
	"math/rand"
	"time"

	"hmis/m/domain"
	"hmis/m/internal/listing"
)

// Rower is implemented by domain records that render as list rows.
type Rower interface {
	Row() map[string]any
}

// RowsOf renders records as rows.
func RowsOf[T Rower](items []T) []listing.Row {
	rows := make([]listing.Row, len(items))
	for i, it := range items {
		rows[i] = listing.Row(it.Row())
	}
	return rows
}

var (
	firstNames  = []string{"Aarav", "Asha", "Bina", "Chetan", "Deepa", "Farhan", "Gita", "Hari", "Isha", "Kiran", "Laxmi", "Manish", "Nisha", "Prakash", "Ritu", "Sagar", "Sita", "Umesh"}
	lastNames   = []string{"Sharma", "Shrestha", "Rao", "Khan", "Gurung", "Thapa", "Patel", "Karki", "Joshi", "Mehta"}
	doctors     = []string{"Dr. Adhikari", "Dr. Basnet", "Dr. Chaudhary", "Dr. Dahal", "Dr. Iyer", "Dr. Menon"}
	departments = []string{"Cardiology", "Dermatology", "ENT", "General Medicine", "Gynecology", "Orthopedics", "Pediatrics"}
	stockItems  = []string{"Paracetamol 500mg", "Amoxicillin 250mg", "Saline 500ml", "Insulin Glargine", "Cotton Roll", "Surgical Gloves", "Syringe 5ml"}
	reasons     = []string{"Expired", "Damaged", "Contaminated", "Recalled"}
	visitStates = []string{domain.StatusScheduled, domain.StatusCheckedIn, domain.StatusCompleted, domain.StatusCancelled}
)

// Mock generates deterministic fixtures. The same seed always yields the
// same records.
type Mock struct {
	r    *rand.Rand
	base time.Time
}

func NewMock(seed int64) *Mock {
	return &Mock{
		r:    rand.New(rand.NewSource(seed)),
		base: time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (m *Mock) pick(s []string) string { return s[m.r.Intn(len(s))] }

func (m *Mock) person() string { return m.pick(firstNames) + " " + m.pick(lastNames) }

// at returns a time within the first 180 days of 2024, on a quarter hour
// between 08:00 and 17:45.
func (m *Mock) at() time.Time {
	return m.base.AddDate(0, 0, m.r.Intn(180)).Add(time.Duration(m.r.Intn(40)) * 15 * time.Minute)
}

func (m *Mock) Appointments(n int) []domain.Appointment {
	out := make([]domain.Appointment, n)
	for i := range out {
		out[i] = domain.Appointment{
			ID:         int64(i + 1),
			Patient:    m.person(),
			Doctor:     m.pick(doctors),
			Department: m.pick(departments),
			At:         m.at(),
			Status:     m.pick(visitStates),
		}
	}
	return out
}

func (m *Mock) OPDVisits(n int) []domain.OPDVisit {
	out := make([]domain.OPDVisit, n)
	for i := range out {
		gender := "Male"
		if m.r.Intn(2) == 0 {
			gender = "Female"
		}
		out[i] = domain.OPDVisit{
			OPDNo:     int64(240000 + i + 1),
			Patient:   m.person(),
			Age:       1 + m.r.Intn(90),
			Gender:    gender,
			Doctor:    m.pick(doctors),
			VisitedAt: m.at(),
			Fee:       float64(200 + 50*m.r.Intn(17)),
			Status:    m.pick(visitStates),
		}
	}
	return out
}

// Roles returns the fixed role table; n is ignored beyond its length.
func (m *Mock) Roles(n int) []domain.RoleEntry {
	base := []domain.RoleEntry{
		{Name: "Administrator", Description: "Full system access"},
		{Name: "Receptionist", Description: "Registration and appointments"},
		{Name: "Doctor", Description: "Consultations and prescriptions"},
		{Name: "Nurse", Description: "Ward and patient care"},
		{Name: "Pharmacist", Description: "Dispensing and stock"},
		{Name: "Storekeeper", Description: "Requisitions, returns and discards"},
		{Name: "Accountant", Description: "Billing and reports"},
		{Name: "Lab Technician", Description: "Sample collection and results"},
	}
	n = min(n, len(base))
	out := make([]domain.RoleEntry, n)
	for i := range out {
		out[i] = base[i]
		out[i].ID = int64(i + 1)
		out[i].Users = 1 + m.r.Intn(25)
	}
	return out
}

func (m *Mock) DiscardItems(n int) []domain.DiscardItem {
	out := make([]domain.DiscardItem, n)
	for i := range out {
		out[i] = domain.DiscardItem{
			ID:          int64(i + 1),
			Item:        m.pick(stockItems),
			Batch:       fmt.Sprintf("B%03d-%c", m.r.Intn(1000), 'A'+rune(m.r.Intn(6))),
			Quantity:    int64(1 + m.r.Intn(200)),
			Reason:      m.pick(reasons),
			DiscardedOn: m.at(),
		}
	}
	return out
}

func (m *Mock) Requisitions(n int) []domain.Requisition {
	states := []string{StatusPending, StatusApproved, StatusIssued, StatusRejected}
	out := make([]domain.Requisition, n)
	for i := range out {
		out[i] = domain.Requisition{
			ReqNo:       int64(i + 1),
			Department:  m.pick(departments),
			ItemCount:   1 + m.r.Intn(12),
			RequestedOn: m.at(),
			Status:      m.pick(states),
		}
	}
	return out
}

func (m *Mock) Returns(n int) []domain.ItemReturn {
	states := []string{StatusPending, StatusApproved, StatusRefunded, StatusRejected}
	out := make([]domain.ItemReturn, n)
	for i := range out {
		out[i] = domain.ItemReturn{
			ReturnNo:   int64(i + 1),
			Patient:    m.person(),
			Amount:     float64(m.r.Intn(500000)) / 100,
			ReturnedOn: m.at(),
			Status:     m.pick(states),
		}
	}
	return out
}

// MockSources generates n rows per list from seed and serves each list
// from memory.
func MockSources(seed int64, n int) map[string]Source {
	m := NewMock(seed)
	return map[string]Source{
		"appointments":  StaticSource(RowsOf(m.Appointments(n))),
		"opd-visits":    StaticSource(RowsOf(m.OPDVisits(n))),
		"roles":         StaticSource(RowsOf(m.Roles(n))),
		"discard-items": StaticSource(RowsOf(m.DiscardItems(n))),
		"requisitions":  StaticSource(RowsOf(m.Requisitions(n))),
		"returns":       StaticSource(RowsOf(m.Returns(n))),
	}
}
