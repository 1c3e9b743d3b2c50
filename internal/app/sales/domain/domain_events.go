package domain

import (
	"strconv"
	"time"
)

// SalesYearPurgedEvent is emitted when a full year of sales records is
// bulk-deleted. This is the only write path that removes rows from the
// append-only sales store.
type SalesYearPurgedEvent struct {
	Year        int64
	RowsDeleted int64
	PurgedAt    time.Time
}

func (e *SalesYearPurgedEvent) EventType() string {
	return "sales.year_purged"
}

func (e *SalesYearPurgedEvent) AggregateID() string {
	return strconv.FormatInt(e.Year, 10)
}
