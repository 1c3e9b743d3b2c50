package compare_budget

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/finrecon-service/internal/app/budget/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/budget/domain"
	salescontracts "github.com/light-bringer/finrecon-service/internal/app/sales/contracts"
	"github.com/light-bringer/finrecon-service/internal/pkg/ident"
)

type fakeBudgetRepo struct {
	entries []*contracts.BudgetEntry
}

func (f *fakeBudgetRepo) InsertMut(*contracts.BudgetEntry) *spanner.Mutation { return nil }

func (f *fakeBudgetRepo) ListByYear(_ context.Context, year int64, countryCodes []string) ([]*contracts.BudgetEntry, error) {
	var out []*contracts.BudgetEntry
	for _, entry := range f.entries {
		if entry.Year != year {
			continue
		}
		if len(countryCodes) > 0 {
			found := false
			for _, code := range countryCodes {
				if entry.CountryCode == code {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

type fakeSalesReadModel struct {
	rows []*salescontracts.SalesRow
}

func (f *fakeSalesReadModel) ListSales(_ context.Context, filter *salescontracts.SalesFilter) ([]*salescontracts.SalesRow, error) {
	var out []*salescontracts.SalesRow
	for _, row := range f.rows {
		if filter.Year != 0 && row.Year != filter.Year {
			continue
		}
		if filter.Month != 0 && row.Month != filter.Month {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func budgetEntry(country, product string, year int64, months [12]int64) *contracts.BudgetEntry {
	entry := &contracts.BudgetEntry{
		EntryID:     "e-" + product,
		CountryCode: country,
		ProductName: product,
		Year:        year,
		Months:      months,
	}
	for _, units := range months {
		entry.TotalUnits += units
	}
	return entry
}

func newTestQuery(budget []*contracts.BudgetEntry, sales []*salescontracts.SalesRow) *Query {
	return NewQuery(
		&fakeBudgetRepo{entries: budget},
		&fakeSalesReadModel{rows: sales},
		ident.NewMatcher(),
	)
}

func TestExecute_FuzzyJoinSumsAllMatchingKeys(t *testing.T) {
	budget := []*contracts.BudgetEntry{
		budgetEntry("AR", "Genomind", 2026, [12]int64{100, 100, 100}),
	}
	// The same logical product appears under different spellings; all
	// of them accumulate into the budget row's actuals.
	sales := []*salescontracts.SalesRow{
		{Product: "Genomind Professional PGx", Company: "Genetica Argentina", Year: 2025, Month: 1, Units: 40},
		{Product: "Genomind [v2]", Company: "Genetica Argentina", Year: 2025, Month: 2, Units: 30},
		{Product: "Genomind Professional PGx", Company: "Genetica Argentina", Year: 2024, Month: 1, Units: 20},
		// Same product, different derived country: must not count.
		{Product: "Genomind Professional PGx", Company: "Laboratorios Chile", Year: 2025, Month: 1, Units: 500},
	}

	query := newTestQuery(budget, sales)
	resp, err := query.Execute(context.Background(), &Request{
		BudgetYear:  2026,
		ActualYearA: 2024,
		ActualYearB: 2025,
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	row := resp.Rows[0]
	assert.Equal(t, "AR", row.CountryCode)
	assert.Equal(t, int64(300), row.BudgetUnits)
	assert.Equal(t, int64(20), row.ActualUnitsA)
	assert.Equal(t, int64(70), row.ActualUnitsB) // 40 + 30 across spellings
	assert.Equal(t, int64(230), row.DeltaBudgetVsActual)
	assert.InDelta(t, 230.0/70.0, row.DeltaBudgetVsActualPct, 1e-9)
	assert.Equal(t, int64(50), row.DeltaYearBVsYearA)
	assert.InDelta(t, 50.0/20.0, row.DeltaYearBVsYearAPct, 1e-9)
}

func TestExecute_MonthFilterUsesMonthColumn(t *testing.T) {
	months := [12]int64{}
	months[2] = 40 // March
	months[0] = 460
	budget := []*contracts.BudgetEntry{
		budgetEntry("AR", "Genomind", 2026, months), // total 500
	}
	sales := []*salescontracts.SalesRow{
		{Product: "Genomind", Company: "Genetica Argentina", Year: 2025, Month: 3, Units: 10},
		{Product: "Genomind", Company: "Genetica Argentina", Year: 2025, Month: 1, Units: 99},
	}

	query := newTestQuery(budget, sales)

	t.Run("full year uses total", func(t *testing.T) {
		resp, err := query.Execute(context.Background(), &Request{
			BudgetYear: 2026, ActualYearA: 2024, ActualYearB: 2025,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(500), resp.Rows[0].BudgetUnits)
		assert.Equal(t, int64(109), resp.Rows[0].ActualUnitsB)
	})

	t.Run("march uses the march column and march actuals", func(t *testing.T) {
		resp, err := query.Execute(context.Background(), &Request{
			BudgetYear: 2026, ActualYearA: 2024, ActualYearB: 2025, Month: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(40), resp.Rows[0].BudgetUnits)
		assert.Equal(t, int64(10), resp.Rows[0].ActualUnitsB)
	})
}

func TestExecute_InvalidMonth(t *testing.T) {
	query := newTestQuery(nil, nil)

	for _, month := range []int64{-1, 13, 99} {
		_, err := query.Execute(context.Background(), &Request{
			BudgetYear: 2026, ActualYearA: 2024, ActualYearB: 2025, Month: month,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidMonth, "month %d", month)
	}
}

func TestExecute_ZeroDenominatorPctRule(t *testing.T) {
	budget := []*contracts.BudgetEntry{
		budgetEntry("AR", "No Actuals Product", 2026, [12]int64{50}),
		budgetEntry("AR", "Nothing At All XY", 2026, [12]int64{}),
	}

	query := newTestQuery(budget, nil)
	resp, err := query.Execute(context.Background(), &Request{
		BudgetYear: 2026, ActualYearA: 2024, ActualYearB: 2025,
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)

	byName := make(map[string]*ComparisonRow)
	for _, row := range resp.Rows {
		byName[row.ProductName] = row
	}

	// Nonzero budget against zero actuals: 100%.
	withBudget := byName["No Actuals Product"]
	assert.Equal(t, int64(50), withBudget.DeltaBudgetVsActual)
	assert.Equal(t, 1.0, withBudget.DeltaBudgetVsActualPct)

	// Zero against zero: 0%.
	empty := byName["Nothing At All XY"]
	assert.Equal(t, int64(0), empty.DeltaBudgetVsActual)
	assert.Equal(t, 0.0, empty.DeltaBudgetVsActualPct)
	assert.Equal(t, 0.0, empty.DeltaYearBVsYearAPct)
}

func TestExecute_CountryFilter(t *testing.T) {
	budget := []*contracts.BudgetEntry{
		budgetEntry("AR", "Genomind", 2026, [12]int64{10}),
		budgetEntry("CL", "Genomind", 2026, [12]int64{20}),
		budgetEntry("UY", "Genomind", 2026, [12]int64{30}),
	}

	query := newTestQuery(budget, nil)
	resp, err := query.Execute(context.Background(), &Request{
		BudgetYear: 2026, ActualYearA: 2024, ActualYearB: 2025,
		Countries: []string{"AR", "UY"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 2)
	for _, row := range resp.Rows {
		assert.NotEqual(t, "CL", row.CountryCode)
	}
}

func TestExecute_SortDescendingByChosenDelta(t *testing.T) {
	budget := []*contracts.BudgetEntry{
		budgetEntry("AR", "Small Gap Panel", 2026, [12]int64{10}),
		budgetEntry("AR", "Large Gap Panel", 2026, [12]int64{300}),
		budgetEntry("AR", "Medium Gap Panel", 2026, [12]int64{100}),
	}

	query := newTestQuery(budget, nil)

	resp, err := query.Execute(context.Background(), &Request{
		BudgetYear: 2026, ActualYearA: 2024, ActualYearB: 2025,
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 3)
	assert.Equal(t, "Large Gap Panel", resp.Rows[0].ProductName)
	assert.Equal(t, "Medium Gap Panel", resp.Rows[1].ProductName)
	assert.Equal(t, "Small Gap Panel", resp.Rows[2].ProductName)
}

func TestExecute_SortByYearOverYearDelta(t *testing.T) {
	budget := []*contracts.BudgetEntry{
		budgetEntry("AR", "Flat Panel Kit", 2026, [12]int64{500}),
		budgetEntry("AR", "Growth Panel Kit", 2026, [12]int64{10}),
	}
	sales := []*salescontracts.SalesRow{
		{Product: "Flat Panel Kit", Company: "Genetica Argentina", Year: 2024, Month: 1, Units: 100},
		{Product: "Flat Panel Kit", Company: "Genetica Argentina", Year: 2025, Month: 1, Units: 100},
		{Product: "Growth Panel Kit", Company: "Genetica Argentina", Year: 2024, Month: 1, Units: 10},
		{Product: "Growth Panel Kit", Company: "Genetica Argentina", Year: 2025, Month: 1, Units: 90},
	}

	query := newTestQuery(budget, sales)
	resp, err := query.Execute(context.Background(), &Request{
		BudgetYear: 2026, ActualYearA: 2024, ActualYearB: 2025,
		SortBy: SortByDeltaYears,
	})
	require.NoError(t, err)

	// Sorted by year-over-year growth, not by budget gap: the growth
	// product leads despite its tiny budget delta.
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "Growth Panel Kit", resp.Rows[0].ProductName)
	assert.Equal(t, int64(80), resp.Rows[0].DeltaYearBVsYearA)
	assert.Equal(t, "Flat Panel Kit", resp.Rows[1].ProductName)
	assert.Equal(t, int64(0), resp.Rows[1].DeltaYearBVsYearA)
}

func TestExecute_UnmatchedCountryYieldsZeroActuals(t *testing.T) {
	budget := []*contracts.BudgetEntry{
		budgetEntry("AR", "Genomind", 2026, [12]int64{100}),
	}
	// The company resolves to the unknown sentinel, not AR.
	sales := []*salescontracts.SalesRow{
		{Product: "Genomind", Company: "Mystery Distributor", Year: 2025, Month: 1, Units: 40},
	}

	query := newTestQuery(budget, sales)
	resp, err := query.Execute(context.Background(), &Request{
		BudgetYear: 2026, ActualYearA: 2024, ActualYearB: 2025,
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	assert.Equal(t, int64(0), resp.Rows[0].ActualUnitsB)
}
