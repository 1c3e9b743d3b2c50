package m_override

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the country_overrides table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation writing the full override blob
// for one (product, country) pair. Overrides are last-write-wins, so
// InsertOrUpdate covers both first edit and every later one.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			ProductID,
			CountryCode,
			Overrides,
			UpdatedAt,
		},
		[]interface{}{
			data.ProductID,
			data.CountryCode,
			data.Overrides,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation removing one override record.
func (m *Model) DeleteMut(productID, countryCode string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID, countryCode})
}
