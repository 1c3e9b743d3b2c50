package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/finrecon-service/internal/app/pricing/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
	"github.com/light-bringer/finrecon-service/internal/models/m_override"
	"github.com/light-bringer/finrecon-service/internal/pkg/query"
)

// OverrideRepo implements OverrideRepository for Spanner.
type OverrideRepo struct {
	client *spanner.Client
	model  *m_override.Model
}

// NewOverrideRepo creates a new OverrideRepo.
func NewOverrideRepo(client *spanner.Client) contracts.OverrideRepository {
	return &OverrideRepo{
		client: client,
		model:  m_override.NewModel(),
	}
}

// Get retrieves the override record for one (product, country) pair.
// Returns (nil, nil) when no record exists: absence means defaults.
func (r *OverrideRepo) Get(ctx context.Context, productID, countryCode string) (*domain.OverrideRecord, error) {
	row, err := r.client.Single().ReadRow(ctx, m_override.TableName,
		spanner.Key{productID, countryCode},
		[]string{m_override.ProductID, m_override.CountryCode, m_override.Overrides})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read override: %w", err)
	}

	var data m_override.Data
	if err := row.Columns(&data.ProductID, &data.CountryCode, &data.Overrides); err != nil {
		return nil, fmt.Errorf("failed to scan override: %w", err)
	}

	return decodeData(&data), nil
}

// GetAnyForProduct returns one override record for the product, or
// (nil, nil) when none exist. Countries are scanned in code order so
// repeated calls pick the same record.
func (r *OverrideRepo) GetAnyForProduct(ctx context.Context, productID string) (*domain.OverrideRecord, error) {
	stmt := query.From(m_override.TableName).
		Select(m_override.ProductID, m_override.CountryCode, m_override.Overrides).
		Where(query.Eq(m_override.ProductID, productID)).
		OrderBy(m_override.CountryCode, query.Asc).
		Limit(1).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}

	var data m_override.Data
	if err := row.Columns(&data.ProductID, &data.CountryCode, &data.Overrides); err != nil {
		return nil, fmt.Errorf("failed to scan override: %w", err)
	}

	return decodeData(&data), nil
}

// UpsertMut creates a mutation writing the full record.
func (r *OverrideRepo) UpsertMut(record *domain.OverrideRecord) (*spanner.Mutation, error) {
	if record.ProductID == "" {
		return nil, domain.ErrEmptyProductID
	}
	if record.CountryCode == "" {
		return nil, domain.ErrEmptyCountryCode
	}

	data := &m_override.Data{
		ProductID:   record.ProductID,
		CountryCode: record.CountryCode,
		Overrides:   spanner.NullJSON{Value: EncodeOverrides(record), Valid: true},
	}
	return r.model.UpsertMut(data), nil
}

// decodeData rebuilds the domain record from a database row. Malformed
// blobs decode as empty records, never as errors.
func decodeData(data *m_override.Data) *domain.OverrideRecord {
	var blob map[string]interface{}
	if data.Overrides.Valid {
		blob, _ = data.Overrides.Value.(map[string]interface{})
	}
	return DecodeOverrides(data.ProductID, data.CountryCode, blob)
}
