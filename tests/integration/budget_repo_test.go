//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/finrecon-service/internal/app/budget/repo"
	"github.com/light-bringer/finrecon-service/tests/testutil"
)

func TestBudgetRepo_ListByYear(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	repository := repo.NewBudgetRepo(client)

	months := [12]int64{10, 20, 30}
	testutil.CreateTestBudgetEntry(t, client, "AR", "Genomind", 2026, months)
	testutil.CreateTestBudgetEntry(t, client, "CL", "Genomind", 2026, months)
	testutil.CreateTestBudgetEntry(t, client, "AR", "Oncotype DX", 2025, months)

	t.Run("all countries", func(t *testing.T) {
		entries, err := repository.ListByYear(ctx, 2026, nil)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("country filter", func(t *testing.T) {
		entries, err := repository.ListByYear(ctx, 2026, []string{"AR"})
		require.NoError(t, err)
		require.Len(t, entries, 1)

		entry := entries[0]
		assert.Equal(t, "AR", entry.CountryCode)
		assert.Equal(t, "Genomind", entry.ProductName)
		assert.Equal(t, int64(60), entry.TotalUnits)
		assert.Equal(t, int64(20), entry.Months[1])
		assert.Equal(t, int64(20), entry.UnitsForMonth(2))
		assert.Equal(t, int64(60), entry.UnitsForMonth(0))
	})

	t.Run("no rows for year", func(t *testing.T) {
		entries, err := repository.ListByYear(ctx, 1999, nil)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
