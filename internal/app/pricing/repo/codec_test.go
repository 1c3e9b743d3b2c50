package repo

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
)

func TestDecodeOverrides_RoundTrip(t *testing.T) {
	record := domain.NewOverrideRecord("p1", "AR")
	record.GrossSales = domain.NewMoneyFromUSD(4000)
	record.Reviewed = true
	record.SetField(domain.FieldCommercialDiscount, domain.FieldOverride{
		Amount: domain.NewMoneyFromUSD(500),
		Pct:    big.NewRat(1, 8),
	})
	record.SetField(domain.FieldProductCost, domain.FieldOverride{
		Pct: big.NewRat(1, 10),
	})

	blob := EncodeOverrides(record)
	decoded := DecodeOverrides("p1", "AR", blob)

	assert.True(t, decoded.GrossSales.Equals(domain.NewMoneyFromUSD(4000)))
	assert.True(t, decoded.Reviewed)

	discount, ok := decoded.Field(domain.FieldCommercialDiscount)
	require.True(t, ok)
	assert.Equal(t, 500.0, discount.Amount.Float64())
	require.NotNil(t, discount.Pct)
	pct, _ := discount.Pct.Float64()
	assert.InDelta(t, 0.125, pct, 1e-9)

	productCost, ok := decoded.Field(domain.FieldProductCost)
	require.True(t, ok)
	assert.Nil(t, productCost.Amount)
	require.NotNil(t, productCost.Pct)
}

func TestDecodeOverrides_SparseBlob(t *testing.T) {
	blob := map[string]interface{}{
		"kitCostUSD": 99.0,
	}
	decoded := DecodeOverrides("p1", "CL", blob)

	kit, ok := decoded.Field(domain.FieldKitCost)
	require.True(t, ok)
	assert.Equal(t, 99.0, kit.Amount.Float64())

	_, ok = decoded.Field(domain.FieldProductCost)
	assert.False(t, ok)
	assert.Nil(t, decoded.GrossSales)
	assert.False(t, decoded.Reviewed)
}

func TestDecodeOverrides_GarbageIsAbsent(t *testing.T) {
	// Malformed values decode as absent; one bad field cannot poison
	// the rest of the record.
	blob := map[string]interface{}{
		"grossSalesUSD":  "not a number",
		"kitCostUSD":     []interface{}{1, 2, 3},
		"productCostPct": map[string]interface{}{"nested": true},
		"paymentFeeUSD":  42.5,
		"reviewed":       "yes",
	}
	decoded := DecodeOverrides("p1", "AR", blob)

	assert.Nil(t, decoded.GrossSales)
	assert.False(t, decoded.Reviewed)

	_, ok := decoded.Field(domain.FieldKitCost)
	assert.False(t, ok)
	_, ok = decoded.Field(domain.FieldProductCost)
	assert.False(t, ok)

	fee, ok := decoded.Field(domain.FieldPaymentFee)
	require.True(t, ok)
	assert.Equal(t, 42.5, fee.Amount.Float64())
}

func TestDecodeOverrides_NilBlob(t *testing.T) {
	decoded := DecodeOverrides("p1", "AR", nil)
	assert.True(t, decoded.IsEmpty())
	assert.Equal(t, "p1", decoded.ProductID)
	assert.Equal(t, "AR", decoded.CountryCode)
}

func TestDecodeOverrides_IntegerValues(t *testing.T) {
	// Older writers stored whole numbers as int64.
	blob := map[string]interface{}{
		"kitCostUSD": int64(150),
	}
	decoded := DecodeOverrides("p1", "AR", blob)

	kit, ok := decoded.Field(domain.FieldKitCost)
	require.True(t, ok)
	assert.Equal(t, 150.0, kit.Amount.Float64())
}
