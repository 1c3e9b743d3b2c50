package m_budget

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the budget_entries table.
// ProductID is nullable: budget rows arrive by product label and are
// linked to a catalog product only when the fuzzy matcher finds one.
type Data struct {
	EntryID     string
	CountryCode string
	ProductName string
	ProductID   spanner.NullString
	Year        int64
	Months      [12]int64
	TotalUnits  int64
	CreatedAt   time.Time
}

// MonthUnits returns the planned units for a 1-based month number.
func (d *Data) MonthUnits(month int) int64 {
	if month < 1 || month > 12 {
		return 0
	}
	return d.Months[month-1]
}
