package testutil

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/finrecon-service/internal/models/m_budget"
	"github.com/light-bringer/finrecon-service/internal/models/m_product"
	"github.com/light-bringer/finrecon-service/internal/models/m_sales"
)

// CreateTestProduct creates a catalog product directly in the database
// and returns its ID.
func CreateTestProduct(t *testing.T, client *spanner.Client, name string, basePriceUSD int64) string {
	t.Helper()

	ctx := context.Background()
	productID := uuid.New().String()

	model := m_product.NewModel()
	data := &m_product.Data{
		ProductID:            productID,
		Name:                 name,
		SKU:                  "TEST-" + productID[:8],
		Category:             "genetics",
		Subtype:              "panel",
		BasePriceNumerator:   basePriceUSD,
		BasePriceDenominator: 1,
	}

	_, err := client.Apply(ctx, []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to create test product")

	return productID
}

// CreateTestSalesRow appends one sales record and returns its ID.
// Pass a negative amount to store a NULL amount.
func CreateTestSalesRow(t *testing.T, client *spanner.Client, product, company string, year, month, units int64, amountUSD float64) string {
	t.Helper()

	ctx := context.Background()
	saleID := uuid.New().String()

	model := m_sales.NewModel()
	data := &m_sales.Data{
		SaleID:   saleID,
		Producto: product,
		Compania: company,
		Mes:      month,
		Anio:     year,
		Cantidad: units,
	}
	if amountUSD >= 0 {
		data.MontoTotal = spanner.NullFloat64{Float64: amountUSD, Valid: true}
	}

	_, err := client.Apply(ctx, []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to create test sales row")

	return saleID
}

// CreateTestBudgetEntry writes one budget entry and returns its ID.
func CreateTestBudgetEntry(t *testing.T, client *spanner.Client, countryCode, productName string, year int64, months [12]int64) string {
	t.Helper()

	ctx := context.Background()
	entryID := uuid.New().String()

	var total int64
	for _, units := range months {
		total += units
	}

	model := m_budget.NewModel()
	data := &m_budget.Data{
		EntryID:     entryID,
		CountryCode: countryCode,
		ProductName: productName,
		Year:        year,
		Months:      months,
		TotalUnits:  total,
	}

	_, err := client.Apply(ctx, []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to create test budget entry")

	return entryID
}

// AssertAuditEvent verifies an audit event exists with the given event type.
func AssertAuditEvent(t *testing.T, client *spanner.Client, eventType string) {
	t.Helper()

	ctx := context.Background()
	stmt := spanner.Statement{
		SQL:    "SELECT event_id FROM audit_events WHERE event_type = @eventType",
		Params: map[string]interface{}{"eventType": eventType},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "audit event not found for type: %s", eventType)
	require.NotNil(t, row, "audit event not found for type: %s", eventType)
}

// AssertAuditEventCount verifies the count of audit events.
func AssertAuditEventCount(t *testing.T, client *spanner.Client, expectedCount int) {
	t.Helper()
	AssertRowCount(t, client, "audit_events", expectedCount)
}
