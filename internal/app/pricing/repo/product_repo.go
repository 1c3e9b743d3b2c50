package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/finrecon-service/internal/app/pricing/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
	"github.com/light-bringer/finrecon-service/internal/models/m_product"
	"github.com/light-bringer/finrecon-service/internal/pkg/query"
)

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	client *spanner.Client
	model  *m_product.Model
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client) contracts.ProductRepository {
	return &ProductRepo{
		client: client,
		model:  m_product.NewModel(),
	}
}

var productColumns = []string{
	m_product.ProductID,
	m_product.Name,
	m_product.SKU,
	m_product.Category,
	m_product.Subtype,
	m_product.BasePriceNumerator,
	m_product.BasePriceDenominator,
	m_product.CreatedAt,
	m_product.UpdatedAt,
}

// InsertMut creates a mutation for inserting a catalog product.
func (r *ProductRepo) InsertMut(product *domain.Product) (*spanner.Mutation, error) {
	basePrice := product.BasePrice()
	if !basePrice.IsSafeForStorage() {
		return nil, fmt.Errorf("base price exceeds storage capacity for product %s", product.ID())
	}

	data := &m_product.Data{
		ProductID:            product.ID(),
		Name:                 product.Name(),
		SKU:                  product.SKU(),
		Category:             product.Category(),
		Subtype:              product.Subtype(),
		BasePriceNumerator:   basePrice.Numerator(),
		BasePriceDenominator: basePrice.Denominator(),
	}
	return r.model.InsertMut(data), nil
}

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
func (r *ProductRepo) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, productColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	return dataToDomain(&data)
}

// List retrieves the full catalog, ordered by name.
func (r *ProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	stmt := query.From(m_product.TableName).
		Select(productColumns...).
		OrderBy(m_product.Name, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var products []*domain.Product
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}

		product, err := dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// dataToDomain converts database Data to a domain Product.
func dataToDomain(data *m_product.Data) (*domain.Product, error) {
	basePrice, err := domain.NewMoney(data.BasePriceNumerator, data.BasePriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid base price for product %s: %w", data.ProductID, err)
	}

	return domain.NewProduct(
		data.ProductID,
		data.Name,
		data.SKU,
		data.Category,
		data.Subtype,
		basePrice,
		data.CreatedAt,
		data.UpdatedAt,
	)
}
