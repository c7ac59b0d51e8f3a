package domain

// Layouts used when rows are rendered for list views.
const (
	DateLayout     = "02 Jan 2006"
	TimeLayout     = "03:04 PM"
	DateTimeLayout = "02 Jan 2006, 03:04 PM"
)
