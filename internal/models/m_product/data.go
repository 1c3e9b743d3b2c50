package m_product

import "time"

// Data represents the database model for the products table.
type Data struct {
	ProductID            string
	Name                 string
	SKU                  string
	Category             string
	Subtype              string
	BasePriceNumerator   int64
	BasePriceDenominator int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
