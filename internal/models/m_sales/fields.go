package m_sales

// Field name constants for the sales_records table.
// Column names mirror the upstream sales feed, which arrives with
// Spanish headers; renaming them here would force a mapping layer on
// every ingest run.
const (
	TableName = "sales_records"

	SaleID     = "sale_id"
	Producto   = "producto"
	Compania   = "compania"
	Mes        = "mes"
	Anio       = "anio"
	Cantidad   = "cantidad_ventas"
	MontoTotal = "monto_total"
	IngestedAt = "ingested_at"
)
