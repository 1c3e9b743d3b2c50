package domain

import (
	"math/big"
	"time"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// OverrideFieldSetEvent is emitted when one side of a cost field is
// edited. Both the persisted amount and percentage are recorded, so the
// audit trail shows the resolved pair, not just the side the caller sent.
type OverrideFieldSetEvent struct {
	ProductID   string
	CountryCode string
	Field       CostField
	Side        EditSide
	Amount      *Money
	Pct         *big.Rat
	UpdatedAt   time.Time
}

func (e *OverrideFieldSetEvent) EventType() string {
	return "pricing.override.field_set"
}

func (e *OverrideFieldSetEvent) AggregateID() string {
	return e.ProductID
}

// GrossSalesSetEvent is emitted when a country-level gross sales price
// is set, replacing the catalog base price for that country.
type GrossSalesSetEvent struct {
	ProductID   string
	CountryCode string
	GrossSales  *Money
	UpdatedAt   time.Time
}

func (e *GrossSalesSetEvent) EventType() string {
	return "pricing.override.gross_sales_set"
}

func (e *GrossSalesSetEvent) AggregateID() string {
	return e.ProductID
}

// OverrideReviewedEvent is emitted when an operator marks an override
// record as reviewed.
type OverrideReviewedEvent struct {
	ProductID   string
	CountryCode string
	Reviewed    bool
	UpdatedAt   time.Time
}

func (e *OverrideReviewedEvent) EventType() string {
	return "pricing.override.reviewed"
}

func (e *OverrideReviewedEvent) AggregateID() string {
	return e.ProductID
}
