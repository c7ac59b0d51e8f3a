package domain

// CatalogItem is a billable service or stock item with its list rate.
type CatalogItem struct {
	ID       int64   `db:"id" json:"id"`
	Code     string  `db:"code" json:"code"`
	Name     string  `db:"name" json:"name"`
	Category string  `db:"category" json:"category"`
	Rate     float64 `db:"rate" json:"rate"`
}
