package domain

// CostField identifies one overridable line of the P&L waterfall.
// The string value is the stable concept key used by the persisted
// override blob (`<concept>USD` / `<concept>Pct`).
type CostField string

const (
	FieldCommercialDiscount CostField = "commercialDiscount"
	FieldProductCost        CostField = "productCost"
	FieldKitCost            CostField = "kitCost"
	FieldPaymentFee         CostField = "paymentFee"
	FieldSampleHandling     CostField = "sampleHandling"
	FieldSanitaryPermits    CostField = "sanitaryPermits"
	FieldExternalCourier    CostField = "externalCourier"
	FieldInternalCourier    CostField = "internalCourier"
	FieldPhysiciansFee      CostField = "physiciansFee"
	FieldSalesCommission    CostField = "salesCommission"
)

// CostOfSalesFields lists the nine cost-of-sales lines in waterfall order.
// Commercial Discount is not a cost-of-sales line: it sits between Gross
// Sales and Sales Revenue and is excluded from Total Cost of Sales.
var CostOfSalesFields = []CostField{
	FieldProductCost,
	FieldKitCost,
	FieldPaymentFee,
	FieldSampleHandling,
	FieldSanitaryPermits,
	FieldExternalCourier,
	FieldInternalCourier,
	FieldPhysiciansFee,
	FieldSalesCommission,
}

// OverridableFields lists every field accepting an (amount, pct) override.
var OverridableFields = append([]CostField{FieldCommercialDiscount}, CostOfSalesFields...)

// AmountKey returns the persisted JSON key for the absolute-USD side.
func (f CostField) AmountKey() string {
	return string(f) + "USD"
}

// PctKey returns the persisted JSON key for the percentage side.
func (f CostField) PctKey() string {
	return string(f) + "Pct"
}

// IsValid reports whether f names a known overridable field.
func (f CostField) IsValid() bool {
	for _, known := range OverridableFields {
		if f == known {
			return true
		}
	}
	return false
}

// Label returns the display label for the field.
func (f CostField) Label() string {
	switch f {
	case FieldCommercialDiscount:
		return "Commercial Discount"
	case FieldProductCost:
		return "Product Cost"
	case FieldKitCost:
		return "Kit Cost"
	case FieldPaymentFee:
		return "Payment Fee"
	case FieldSampleHandling:
		return "Sample Handling"
	case FieldSanitaryPermits:
		return "Sanitary Permits"
	case FieldExternalCourier:
		return "External Courier"
	case FieldInternalCourier:
		return "Internal Courier"
	case FieldPhysiciansFee:
		return "Physicians Fees"
	case FieldSalesCommission:
		return "Sales Commission"
	default:
		return string(f)
	}
}
