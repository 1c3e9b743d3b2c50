package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/finrecon-service/internal/app/budget/contracts"
	"github.com/light-bringer/finrecon-service/internal/models/m_budget"
	"github.com/light-bringer/finrecon-service/internal/pkg/query"
)

// BudgetRepo implements BudgetRepository for Spanner.
type BudgetRepo struct {
	client *spanner.Client
	model  *m_budget.Model
}

// NewBudgetRepo creates a new BudgetRepo.
func NewBudgetRepo(client *spanner.Client) contracts.BudgetRepository {
	return &BudgetRepo{
		client: client,
		model:  m_budget.NewModel(),
	}
}

// InsertMut creates a mutation for upserting one budget entry.
func (r *BudgetRepo) InsertMut(entry *contracts.BudgetEntry) *spanner.Mutation {
	data := &m_budget.Data{
		EntryID:     entry.EntryID,
		CountryCode: entry.CountryCode,
		ProductName: entry.ProductName,
		Year:        entry.Year,
		Months:      entry.Months,
		TotalUnits:  entry.TotalUnits,
	}
	if entry.ProductID != "" {
		data.ProductID = spanner.NullString{StringVal: entry.ProductID, Valid: true}
	}
	return r.model.InsertMut(data)
}

// ListByYear retrieves budget entries for a year. An empty country set
// means all countries.
func (r *BudgetRepo) ListByYear(ctx context.Context, year int64, countryCodes []string) ([]*contracts.BudgetEntry, error) {
	selectCols := append([]string{
		m_budget.EntryID,
		m_budget.CountryCode,
		m_budget.ProductName,
		m_budget.ProductID,
		m_budget.Year,
	}, m_budget.MonthColumns...)
	selectCols = append(selectCols, m_budget.TotalUnits)

	builder := query.From(m_budget.TableName).
		Select(selectCols...).
		Where(query.Eq(m_budget.Year, year)).
		OrderBy(m_budget.ProductName, query.Asc)

	if len(countryCodes) > 0 {
		values := make([]interface{}, len(countryCodes))
		for i, code := range countryCodes {
			values[i] = code
		}
		builder = builder.Where(query.In(m_budget.CountryCode, values...))
	}

	iter := r.client.Single().Query(ctx, builder.Build())
	defer iter.Stop()

	var entries []*contracts.BudgetEntry
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate budget entries: %w", err)
		}

		entry := &contracts.BudgetEntry{}
		var productID spanner.NullString
		dest := []interface{}{
			&entry.EntryID,
			&entry.CountryCode,
			&entry.ProductName,
			&productID,
			&entry.Year,
		}
		for i := range entry.Months {
			dest = append(dest, &entry.Months[i])
		}
		dest = append(dest, &entry.TotalUnits)

		if err := row.Columns(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan budget entry: %w", err)
		}
		if productID.Valid {
			entry.ProductID = productID.StringVal
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
