package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/finrecon-service/internal/app/sales/contracts"
	"github.com/light-bringer/finrecon-service/internal/models/m_sales"
	"github.com/light-bringer/finrecon-service/internal/pkg/query"
)

// SalesRepo implements SalesReadModel and SalesRepository for Spanner.
type SalesRepo struct {
	client *spanner.Client
	model  *m_sales.Model
}

// NewSalesRepo creates a new SalesRepo.
func NewSalesRepo(client *spanner.Client) *SalesRepo {
	return &SalesRepo{
		client: client,
		model:  m_sales.NewModel(),
	}
}

// ListSales retrieves sales rows matching the pushed-down filters.
// Exact filters (company, year, month) go to SQL; fuzzy product
// filtering stays with the caller because the match predicate cannot
// be expressed as a SQL condition.
func (r *SalesRepo) ListSales(ctx context.Context, filter *contracts.SalesFilter) ([]*contracts.SalesRow, error) {
	builder := query.From(m_sales.TableName).
		Select(m_sales.SaleID, m_sales.Producto, m_sales.Compania, m_sales.Mes, m_sales.Anio, m_sales.Cantidad, m_sales.MontoTotal).
		OrderBy(m_sales.SaleID, query.Asc)

	if filter.Company != "" {
		builder = builder.Where(query.Eq(m_sales.Compania, filter.Company))
	}
	if filter.Year != 0 {
		builder = builder.Where(query.Eq(m_sales.Anio, filter.Year))
	}
	if filter.Month != 0 {
		builder = builder.Where(query.Eq(m_sales.Mes, filter.Month))
	}

	iter := r.client.Single().Query(ctx, builder.Build())
	defer iter.Stop()

	var rows []*contracts.SalesRow
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate sales records: %w", err)
		}

		var data m_sales.Data
		if err := row.Columns(
			&data.SaleID,
			&data.Producto,
			&data.Compania,
			&data.Mes,
			&data.Anio,
			&data.Cantidad,
			&data.MontoTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sales record: %w", err)
		}

		out := &contracts.SalesRow{
			SaleID:  data.SaleID,
			Product: data.Producto,
			Company: data.Compania,
			Month:   data.Mes,
			Year:    data.Anio,
			Units:   data.Cantidad,
		}
		if data.MontoTotal.Valid {
			amount := data.MontoTotal.Float64
			out.Amount = &amount
		}

		rows = append(rows, out)
	}

	return rows, nil
}

// InsertMut creates a mutation for appending one sales record.
func (r *SalesRepo) InsertMut(row *contracts.SalesRow) *spanner.Mutation {
	data := &m_sales.Data{
		SaleID:   row.SaleID,
		Producto: row.Product,
		Compania: row.Company,
		Mes:      row.Month,
		Anio:     row.Year,
		Cantidad: row.Units,
	}
	if row.Amount != nil {
		data.MontoTotal = spanner.NullFloat64{Float64: *row.Amount, Valid: true}
	}
	return r.model.InsertMut(data)
}

// PurgeYear bulk-deletes every record for the given year. Partitioned
// DML keeps the delete within mutation limits on large years.
func (r *SalesRepo) PurgeYear(ctx context.Context, year int64) (int64, error) {
	stmt := spanner.Statement{
		SQL:    fmt.Sprintf("DELETE FROM %s WHERE %s = @year", m_sales.TableName, m_sales.Anio),
		Params: map[string]interface{}{"year": year},
	}

	count, err := r.client.PartitionedUpdate(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sales year %d: %w", year, err)
	}
	return count, nil
}
