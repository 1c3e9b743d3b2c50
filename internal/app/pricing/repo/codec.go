package repo

import (
	"math/big"

	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
	"github.com/light-bringer/finrecon-service/internal/models/m_override"
)

// EncodeOverrides flattens an override record into the persisted JSON
// blob: `<concept>USD` / `<concept>Pct` numeric keys plus the reviewed
// flag. Only set values are written; the blob stays sparse.
func EncodeOverrides(record *domain.OverrideRecord) map[string]interface{} {
	blob := make(map[string]interface{})

	if record.GrossSales != nil {
		blob[m_override.KeyGrossSales] = record.GrossSales.Float64()
	}
	if record.Reviewed {
		blob[m_override.KeyReviewed] = true
	}

	for field, fo := range record.Fields() {
		if fo.Amount != nil {
			blob[field.AmountKey()] = fo.Amount.Float64()
		}
		if fo.Pct != nil {
			f, _ := fo.Pct.Float64()
			blob[field.PctKey()] = f
		}
	}

	return blob
}

// DecodeOverrides rebuilds an override record from a persisted blob.
// Reads are resilient: a key holding a non-numeric value (or a
// non-boolean reviewed flag) decodes as absent, never as an error, so
// garbage in one field cannot poison the rest of the record.
func DecodeOverrides(productID, countryCode string, blob map[string]interface{}) *domain.OverrideRecord {
	record := domain.NewOverrideRecord(productID, countryCode)
	if blob == nil {
		return record
	}

	if v, ok := numericValue(blob[m_override.KeyGrossSales]); ok {
		record.GrossSales = domain.NewMoneyFromFloat(v)
	}
	if v, ok := blob[m_override.KeyReviewed].(bool); ok {
		record.Reviewed = v
	}

	for _, field := range domain.OverridableFields {
		var fo domain.FieldOverride
		if v, ok := numericValue(blob[field.AmountKey()]); ok {
			fo.Amount = domain.NewMoneyFromFloat(v)
		}
		if v, ok := numericValue(blob[field.PctKey()]); ok {
			rat := new(big.Rat).SetFloat64(v)
			if rat != nil {
				fo.Pct = rat
			}
		}
		record.SetField(field, fo)
	}

	return record
}

// numericValue coerces a decoded JSON value to float64. JSON numbers
// unmarshal as float64; integer values that arrive as int64 from older
// writers are accepted too. Everything else is treated as absent.
func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
