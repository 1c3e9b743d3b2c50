package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
)

// BudgetEntry is one country's yearly plan for one product label.
// ProductName is the authoritative join key for reconciliation;
// ProductID is a best-effort catalog link and may be empty.
type BudgetEntry struct {
	EntryID     string
	CountryCode string
	ProductName string
	ProductID   string
	Year        int64
	Months      [12]int64
	TotalUnits  int64
}

// UnitsForMonth returns the planned units for a 1-based month, or the
// precomputed yearly total when month is zero.
func (e *BudgetEntry) UnitsForMonth(month int64) int64 {
	if month == 0 {
		return e.TotalUnits
	}
	if month < 1 || month > 12 {
		return 0
	}
	return e.Months[month-1]
}

// BudgetRepository defines the interface for budget persistence.
type BudgetRepository interface {
	// InsertMut creates a mutation for upserting one budget entry
	InsertMut(entry *BudgetEntry) *spanner.Mutation

	// ListByYear retrieves budget entries for a year, optionally
	// restricted to a set of country codes (empty = all countries)
	ListByYear(ctx context.Context, year int64, countryCodes []string) ([]*BudgetEntry, error)
}
