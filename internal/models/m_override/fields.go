package m_override

// Field name constants for the country_overrides table.
// The table is keyed by (product_id, country_code); all override values
// live in a single JSON blob so new cost fields need no schema change.
const (
	TableName = "country_overrides"

	ProductID   = "product_id"
	CountryCode = "country_code"
	Overrides   = "overrides"
	UpdatedAt   = "updated_at"
)

// JSON keys inside the overrides blob that are not per-field pairs.
const (
	KeyGrossSales = "grossSalesUSD"
	KeyReviewed   = "reviewed"
)
