package m_budget

// Field name constants for the budget_entries table.
// One row is a country's yearly plan for one product label, with a
// units column per month plus the precomputed yearly total.
const (
	TableName = "budget_entries"

	EntryID     = "entry_id"
	CountryCode = "country_code"
	ProductName = "product_name"
	ProductID   = "product_id"
	Year        = "year"
	Jan         = "jan_units"
	Feb         = "feb_units"
	Mar         = "mar_units"
	Apr         = "apr_units"
	May         = "may_units"
	Jun         = "jun_units"
	Jul         = "jul_units"
	Aug         = "aug_units"
	Sep         = "sep_units"
	Oct         = "oct_units"
	Nov         = "nov_units"
	Dec         = "dec_units"
	TotalUnits  = "total_units"
	CreatedAt   = "created_at"
)

// MonthColumns lists the twelve monthly columns in calendar order, so
// callers can index by month number (1-based).
var MonthColumns = []string{
	Jan, Feb, Mar, Apr, May, Jun, Jul, Aug, Sep, Oct, Nov, Dec,
}
