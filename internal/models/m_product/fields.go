package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID            = "product_id"
	Name                 = "name"
	SKU                  = "sku"
	Category             = "category"
	Subtype              = "subtype"
	BasePriceNumerator   = "base_price_numerator"
	BasePriceDenominator = "base_price_denominator"
	CreatedAt            = "created_at"
	UpdatedAt            = "updated_at"
)
