package m_sales

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the sales_records table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a sales record.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			SaleID,
			Producto,
			Compania,
			Mes,
			Anio,
			Cantidad,
			MontoTotal,
			IngestedAt,
		},
		[]interface{}{
			data.SaleID,
			data.Producto,
			data.Compania,
			data.Mes,
			data.Anio,
			data.Cantidad,
			data.MontoTotal,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a sales record.
func (m *Model) DeleteMut(saleID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{saleID})
}
