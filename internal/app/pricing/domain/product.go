package domain

import "time"

// Product is the catalog entry a waterfall is priced against. Pricing
// never mutates the catalog, so the aggregate is read-only here: all
// state changes flow through override records instead.
type Product struct {
	id        string
	name      string
	sku       string
	category  string
	subtype   string
	basePrice *Money
	createdAt time.Time
	updatedAt time.Time
}

// NewProduct creates a Product aggregate.
func NewProduct(id, name, sku, category, subtype string, basePrice *Money, createdAt, updatedAt time.Time) (*Product, error) {
	if id == "" {
		return nil, ErrEmptyProductID
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if basePrice == nil || basePrice.IsNegative() {
		return nil, ErrInvalidPrice
	}
	return &Product{
		id:        id,
		name:      name,
		sku:       sku,
		category:  category,
		subtype:   subtype,
		basePrice: basePrice.Copy(),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (p *Product) ID() string        { return p.id }
func (p *Product) Name() string      { return p.name }
func (p *Product) SKU() string       { return p.sku }
func (p *Product) Category() string  { return p.category }
func (p *Product) Subtype() string   { return p.subtype }
func (p *Product) BasePrice() *Money { return p.basePrice.Copy() }

func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
