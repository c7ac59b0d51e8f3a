package datasource

import (
	"hmis/m/domain"
	"hmis/m/internal/listing"
)

// Spec declares one list view: its columns, which of them are searched and
// how they sort.
type Spec struct {
	Name        string                        `json:"name"`
	Title       string                        `json:"title"`
	Columns     []string                      `json:"columns"`
	Searchable  []string                      `json:"searchable"`
	DefaultSort []listing.SortSpec            `json:"default_sort"`
	Rank        map[string][]string           `json:"-"`
	Comparators map[string]listing.Comparator `json:"-"`
}

// Config builds the engine configuration for the list.
func (s Spec) Config() listing.Config {
	cmp := make(map[string]listing.Comparator, len(s.Rank)+len(s.Comparators))
	for field, ranks := range s.Rank {
		cmp[field] = listing.RankComparator(ranks...)
	}
	for field, c := range s.Comparators {
		cmp[field] = c
	}
	return listing.Config{Searchable: s.Searchable, Comparators: cmp}
}

// Requisition and return workflow states.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusIssued   = "Issued"
	StatusRejected = "Rejected"
	StatusRefunded = "Refunded"
)

// Specs lists every list view of the front end.
var Specs = []Spec{
	{
		Name:        "appointments",
		Title:       "Appointments",
		Columns:     []string{"id", "patient", "doctor", "department", "date", "time", "status"},
		Searchable:  []string{"id", "patient", "doctor", "department"},
		DefaultSort: listing.ParseSort("-date,time"),
		Rank: map[string][]string{
			"status": {domain.StatusScheduled, domain.StatusCheckedIn, domain.StatusCompleted, domain.StatusCancelled},
		},
	},
	{
		Name:        "opd-visits",
		Title:       "OPD Visits",
		Columns:     []string{"opd_no", "patient", "age", "gender", "doctor", "visit_date", "fee", "status"},
		Searchable:  []string{"opd_no", "patient", "doctor"},
		DefaultSort: listing.ParseSort("-visit_date"),
		Rank: map[string][]string{
			"status": {domain.StatusScheduled, domain.StatusCheckedIn, domain.StatusCompleted, domain.StatusCancelled},
		},
	},
	{
		Name:        "roles",
		Title:       "Roles",
		Columns:     []string{"id", "name", "description", "users"},
		Searchable:  []string{"name", "description"},
		DefaultSort: listing.ParseSort("name"),
	},
	{
		Name:        "discard-items",
		Title:       "Discarded Items",
		Columns:     []string{"id", "item", "batch", "quantity", "reason", "discarded_on"},
		Searchable:  []string{"item", "batch", "reason"},
		DefaultSort: listing.ParseSort("-discarded_on"),
	},
	{
		Name:        "requisitions",
		Title:       "Requisitions",
		Columns:     []string{"req_no", "department", "item_count", "requested_on", "status"},
		Searchable:  []string{"req_no", "department", "status"},
		DefaultSort: listing.ParseSort("-requested_on"),
		Rank: map[string][]string{
			"status": {StatusPending, StatusApproved, StatusIssued, StatusRejected},
		},
	},
	{
		Name:        "returns",
		Title:       "Returns",
		Columns:     []string{"return_no", "patient", "amount", "returned_on", "status"},
		Searchable:  []string{"return_no", "patient"},
		DefaultSort: listing.ParseSort("-returned_on"),
		Rank: map[string][]string{
			"status": {StatusPending, StatusApproved, StatusRefunded, StatusRejected},
		},
	},
}

// OrdersSpec describes the list of submitted orders kept by the SQL sink.
var OrdersSpec = Spec{
	Name:        "orders",
	Title:       "Submitted Orders",
	Columns:     []string{"id", "kind", "patient", "grand_total", "created_at"},
	Searchable:  []string{"id", "kind", "patient"},
	DefaultSort: listing.ParseSort("-created_at"),
}

// SpecByName finds a list definition in Specs.
func SpecByName(name string) (Spec, bool) {
	for _, s := range Specs {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
