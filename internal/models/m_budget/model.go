package m_budget

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the budget_entries table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a budget entry.
// TotalUnits is always written from the recomputed sum of the monthly
// columns, never from the value the import file claims.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	columns := []string{
		EntryID,
		CountryCode,
		ProductName,
		ProductID,
		Year,
	}
	values := []interface{}{
		data.EntryID,
		data.CountryCode,
		data.ProductName,
		data.ProductID,
		data.Year,
	}

	for i, col := range MonthColumns {
		columns = append(columns, col)
		values = append(values, data.Months[i])
	}

	columns = append(columns, TotalUnits, CreatedAt)
	values = append(values, data.TotalUnits, spanner.CommitTimestamp)

	return spanner.InsertOrUpdate(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a budget entry.
func (m *Model) DeleteMut(entryID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{entryID})
}
