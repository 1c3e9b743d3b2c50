package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money creation", func(t *testing.T) {
		m, err := NewMoney(249900, 100)
		require.NoError(t, err)
		assert.Equal(t, "2499.00", m.String())
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})

	t.Run("negative numerator allowed", func(t *testing.T) {
		m, err := NewMoney(-100, 1)
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	m1 := NewMoneyFromUSD(100)
	m2 := NewMoneyFromUSD(30)

	assert.Equal(t, 130.0, m1.Add(m2).Float64())
	assert.Equal(t, 70.0, m1.Subtract(m2).Float64())
	assert.Equal(t, 150.0, m1.MultiplyByRat(big.NewRat(3, 2)).Float64())
}

func TestMoney_Ratio(t *testing.T) {
	t.Run("normal ratio", func(t *testing.T) {
		part := NewMoneyFromUSD(200)
		base := NewMoneyFromUSD(4000)

		ratio := part.Ratio(base)
		assert.Equal(t, 0, ratio.Cmp(big.NewRat(1, 20)))
	})

	t.Run("zero base yields zero ratio", func(t *testing.T) {
		part := NewMoneyFromUSD(200)

		ratio := part.Ratio(ZeroMoney())
		assert.Equal(t, 0, ratio.Sign())
	})

	t.Run("nil base yields zero ratio", func(t *testing.T) {
		part := NewMoneyFromUSD(200)

		ratio := part.Ratio(nil)
		assert.Equal(t, 0, ratio.Sign())
	})
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyFromUSD(10)
	large := NewMoneyFromUSD(20)

	assert.True(t, small.LessThan(large))
	assert.True(t, large.GreaterThan(small))
	assert.True(t, small.Equals(NewMoneyFromUSD(10)))
	assert.False(t, small.Equals(large))
	assert.True(t, ZeroMoney().IsZero())
	assert.True(t, large.IsPositive())
}

func TestMoney_ExactFractions(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3 in rational arithmetic.
	a, _ := NewMoney(1, 10)
	b, _ := NewMoney(2, 10)
	c, _ := NewMoney(3, 10)

	assert.True(t, a.Add(b).Equals(c))
}

func TestMoney_Copy(t *testing.T) {
	original := NewMoneyFromUSD(100)
	copied := original.Copy()

	modified := copied.Add(NewMoneyFromUSD(1))
	assert.Equal(t, 100.0, original.Float64())
	assert.Equal(t, 101.0, modified.Float64())
}

func TestMoney_FromFloat(t *testing.T) {
	m := NewMoneyFromFloat(2499.99)
	assert.InDelta(t, 2499.99, m.Float64(), 1e-9)
}
