package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// It stores the value as a rational number (numerator/denominator) to avoid
// floating-point precision issues in the resolved waterfall.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(249900, 100) represents $2499.00
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}

	rat := big.NewRat(numerator, denominator)
	return &Money{rat: rat}, nil
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return &Money{rat: big.NewRat(0, 1)}
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// NewMoneyFromFloat creates a new Money instance from a float64 amount.
// Used when loading persisted override blobs, which store plain JSON numbers.
func NewMoneyFromFloat(amount float64) *Money {
	rat := new(big.Rat).SetFloat64(amount)
	if rat == nil {
		rat = big.NewRat(0, 1)
	}
	return &Money{rat: rat}
}

// NewMoneyFromUSD creates a Money instance from a whole-dollar amount.
func NewMoneyFromUSD(usd int64) *Money {
	return &Money{rat: big.NewRat(usd, 1)}
}

// ZeroMoney returns a zero-valued Money instance.
func ZeroMoney() *Money {
	return &Money{rat: big.NewRat(0, 1)}
}

// Numerator returns the numerator of the rational number.
func (m *Money) Numerator() int64 {
	return m.rat.Num().Int64()
}

// Denominator returns the denominator of the rational number.
func (m *Money) Denominator() int64 {
	return m.rat.Denom().Int64()
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	result := new(big.Rat).Add(m.rat, other.rat)
	return &Money{rat: result}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	result := new(big.Rat).Sub(m.rat, other.rat)
	return &Money{rat: result}
}

// MultiplyByRat multiplies this Money value by a rational number and returns a new Money instance.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	result := new(big.Rat).Mul(m.rat, rat)
	return &Money{rat: result}
}

// Ratio returns this value divided by base as a big.Rat.
// A zero base yields a zero ratio: percentage fields never divide by zero,
// they resolve to 0 instead (explicit guard, not an incidental consequence).
func (m *Money) Ratio(base *Money) *big.Rat {
	if base == nil || base.rat.Sign() == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).Quo(new(big.Rat).Set(m.rat), base.rat)
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// MarshalJSON encodes the value as a plain JSON number. Event payloads
// and API responses are display surfaces, so float precision suffices.
func (m *Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Float64())
}

// String returns a string representation of the money value.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

// IsSafeForStorage reports whether numerator and denominator both fit in int64.
func (m *Money) IsSafeForStorage() bool {
	return m.rat.Num().IsInt64() && m.rat.Denom().IsInt64()
}
