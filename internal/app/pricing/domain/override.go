package domain

import "math/big"

// FieldOverride holds the optional override for one cost field.
// Either side can be present; absent is nil, never zero. When both sides
// are present the absolute amount is authoritative for resolution and the
// percentage is only re-derived for display.
type FieldOverride struct {
	Amount *Money
	Pct    *big.Rat
}

// IsEmpty reports whether neither side is set.
func (fo FieldOverride) IsEmpty() bool {
	return fo.Amount == nil && fo.Pct == nil
}

// OverrideRecord is the sparse per-(product, country) override blob.
// It is created lazily on first edit, updated in place with no
// versioning, and read resiliently: malformed persisted values decode
// as absent.
type OverrideRecord struct {
	ProductID   string
	CountryCode string

	// GrossSales overrides the product's base price for this country.
	// Gross Sales has no percentage form.
	GrossSales *Money

	fields map[CostField]FieldOverride

	// Reviewed marks the override as checked by an operator. It rides in
	// the same persisted blob but has no effect on pricing resolution.
	Reviewed bool
}

// NewOverrideRecord creates an empty override record for one (product, country) pair.
func NewOverrideRecord(productID, countryCode string) *OverrideRecord {
	return &OverrideRecord{
		ProductID:   productID,
		CountryCode: countryCode,
		fields:      make(map[CostField]FieldOverride),
	}
}

// Field returns the override for f, if any.
func (r *OverrideRecord) Field(f CostField) (FieldOverride, bool) {
	if r == nil || r.fields == nil {
		return FieldOverride{}, false
	}
	fo, ok := r.fields[f]
	if !ok || fo.IsEmpty() {
		return FieldOverride{}, false
	}
	return fo, true
}

// SetField stores the override for f. An empty override clears the field.
func (r *OverrideRecord) SetField(f CostField, fo FieldOverride) {
	if r.fields == nil {
		r.fields = make(map[CostField]FieldOverride)
	}
	if fo.IsEmpty() {
		delete(r.fields, f)
		return
	}
	r.fields[f] = fo
}

// Fields returns a copy of the set fields.
func (r *OverrideRecord) Fields() map[CostField]FieldOverride {
	out := make(map[CostField]FieldOverride, len(r.fields))
	for f, fo := range r.fields {
		out[f] = fo
	}
	return out
}

// IsEmpty reports whether the record carries no override data at all.
func (r *OverrideRecord) IsEmpty() bool {
	return r.GrossSales == nil && len(r.fields) == 0 && !r.Reviewed
}
