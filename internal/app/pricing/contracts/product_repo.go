package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
)

// ProductRepository defines the interface for catalog persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type ProductRepository interface {
	// InsertMut creates a mutation for inserting a catalog product
	// Returns error if money values exceed int64 bounds
	InsertMut(product *domain.Product) (*spanner.Mutation, error)

	// GetByID retrieves a product by ID, reconstructing the domain aggregate
	GetByID(ctx context.Context, productID string) (*domain.Product, error)

	// List retrieves the full catalog, ordered by name
	List(ctx context.Context) ([]*domain.Product, error)
}
