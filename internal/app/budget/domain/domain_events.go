package domain

import (
	"strconv"
	"time"
)

// BudgetImportedEvent is emitted when a year's budget rows are imported.
type BudgetImportedEvent struct {
	Year           int64
	Entries        int64
	LinkedProducts int64
	ImportedAt     time.Time
}

func (e *BudgetImportedEvent) EventType() string {
	return "budget.imported"
}

func (e *BudgetImportedEvent) AggregateID() string {
	return strconv.FormatInt(e.Year, 10)
}
