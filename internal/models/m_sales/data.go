package m_sales

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the sales_records table.
// MontoTotal is nullable: legacy feed rows sometimes carry units with
// no amount, and those rows still count toward unit totals.
type Data struct {
	SaleID     string
	Producto   string
	Compania   string
	Mes        int64
	Anio       int64
	Cantidad   int64
	MontoTotal spanner.NullFloat64
	IngestedAt time.Time
}
