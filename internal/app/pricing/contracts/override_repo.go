package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
)

// OverrideRepository defines the interface for country override persistence.
// Absence of an override is not an error anywhere in the engine, so Get
// returns (nil, nil) when no record exists.
type OverrideRepository interface {
	// Get retrieves the override record for one (product, country) pair.
	// Returns (nil, nil) when no record exists.
	Get(ctx context.Context, productID, countryCode string) (*domain.OverrideRecord, error)

	// GetAnyForProduct returns one override record for the product across
	// all countries, or (nil, nil) when the product has none. Used by the
	// all-companies aggregation mode, where no single country is
	// authoritative.
	GetAnyForProduct(ctx context.Context, productID string) (*domain.OverrideRecord, error)

	// UpsertMut creates a mutation writing the full record (last write wins)
	UpsertMut(record *domain.OverrideRecord) (*spanner.Mutation, error)
}
