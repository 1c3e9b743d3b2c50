package m_override

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the country_overrides table.
type Data struct {
	ProductID   string
	CountryCode string
	Overrides   spanner.NullJSON // JSON column
	UpdatedAt   time.Time
}
