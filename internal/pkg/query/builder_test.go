package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Basic(t *testing.T) {
	stmt := From("sales_records").
		Select("sale_id", "producto").
		Build()

	assert.Equal(t, "SELECT sale_id, producto FROM sales_records", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectStar(t *testing.T) {
	stmt := From("products").Build()
	assert.Equal(t, "SELECT * FROM products", stmt.SQL)
}

func TestBuilder_WhereEq(t *testing.T) {
	stmt := From("sales_records").
		Select("sale_id").
		Where(Eq("anio", int64(2024))).
		Where(Eq("compania", "Genetica Argentina")).
		Build()

	assert.Equal(t, "SELECT sale_id FROM sales_records WHERE anio = @p0 AND compania = @p1", stmt.SQL)
	assert.Equal(t, int64(2024), stmt.Params["p0"])
	assert.Equal(t, "Genetica Argentina", stmt.Params["p1"])
}

func TestBuilder_WhereIn(t *testing.T) {
	stmt := From("budget_entries").
		Select("entry_id").
		Where(Eq("year", int64(2025))).
		Where(In("country_code", "AR", "CL", "UY")).
		Build()

	assert.Equal(t, "SELECT entry_id FROM budget_entries WHERE year = @p0 AND country_code IN (@p1, @p2, @p3)", stmt.SQL)
	assert.Equal(t, "AR", stmt.Params["p1"])
	assert.Equal(t, "CL", stmt.Params["p2"])
	assert.Equal(t, "UY", stmt.Params["p3"])
}

func TestBuilder_IsNotNull(t *testing.T) {
	stmt := From("sales_records").
		Select("sale_id").
		Where(IsNotNull("monto_total")).
		Build()

	assert.Equal(t, "SELECT sale_id FROM sales_records WHERE monto_total IS NOT NULL", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_OrderByAndLimit(t *testing.T) {
	stmt := From("audit_events").
		Select("event_id").
		OrderBy("created_at", Desc).
		Limit(50).
		Build()

	assert.Equal(t, "SELECT event_id FROM audit_events ORDER BY created_at DESC LIMIT @limit", stmt.SQL)
	assert.Equal(t, int64(50), stmt.Params["limit"])
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("products").Select("product_id")
	withFilter := base.Where(Eq("category", "genetics"))

	assert.Equal(t, "SELECT product_id FROM products", base.Build().SQL)
	assert.Contains(t, withFilter.Build().SQL, "WHERE category = @p0")
}
