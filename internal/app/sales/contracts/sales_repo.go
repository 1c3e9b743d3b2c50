package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
)

// SalesRow is one sales record as consumed from the aggregation view.
// Product and Company are free-text labels straight from the feed;
// Amount is nil when the feed row carried units with no amount.
type SalesRow struct {
	SaleID  string
	Product string
	Company string
	Month   int64
	Year    int64
	Units   int64
	Amount  *float64
}

// SalesFilter holds the filters that can be pushed down to SQL.
// Product filtering is fuzzy and is applied in-memory by the caller.
type SalesFilter struct {
	Company string // exact label match; empty = all companies
	Year    int64  // 0 = all years
	Month   int64  // 0 = all months
}

// SalesReadModel defines the read interface over the sales store.
type SalesReadModel interface {
	// ListSales retrieves sales rows matching the pushed-down filters
	ListSales(ctx context.Context, filter *SalesFilter) ([]*SalesRow, error)
}

// SalesRepository defines the write interface over the sales store.
// The store is append-only apart from explicit bulk deletion by year.
type SalesRepository interface {
	// InsertMut creates a mutation for appending one sales record
	InsertMut(row *SalesRow) *spanner.Mutation

	// PurgeYear bulk-deletes every record for the given year via
	// partitioned DML and returns the number of rows deleted
	PurgeYear(ctx context.Context, year int64) (int64, error)
}
