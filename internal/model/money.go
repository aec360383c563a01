package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount indicates a monetary input that is not a finite number.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is a fixed-point monetary amount with exactly two fractional
// digits. All arithmetic stays in decimal space; amounts never pass
// through binary floating point once constructed.
type Money struct {
	dec decimal.Decimal
}

// ZeroMoney returns a Money of 0.00.
func ZeroMoney() Money {
	return Money{dec: decimal.Zero}
}

// NewMoney parses a decimal string ("12.345" -> 12.35) and rounds
// half-up to two places. Ties round away from zero.
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{dec: d.Round(2)}, nil
}

// NewMoneyFromFloat converts a float64, rejecting NaN and infinities.
func NewMoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}
	return Money{dec: decimal.NewFromFloat(f).Round(2)}, nil
}

// MoneyFromCents builds a Money from an integer number of cents, the
// storage representation.
func MoneyFromCents(cents int64) Money {
	return Money{dec: decimal.New(cents, -2)}
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.dec.Shift(2).IntPart()
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{dec: m.dec.Add(other.dec)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{dec: m.dec.Sub(other.dec)}
}

// MulScalar returns m scaled by f, rounded back to two places.
func (m Money) MulScalar(f float64) Money {
	return Money{dec: m.dec.Mul(decimal.NewFromFloat(f)).Round(2)}
}

// Div returns m divided by n equal parts, rounded to two places.
func (m Money) Div(n int64) (Money, error) {
	if n == 0 {
		return Money{}, fmt.Errorf("%w: division by zero", ErrInvalidAmount)
	}
	return Money{dec: m.dec.Div(decimal.NewFromInt(n)).Round(2)}, nil
}

// Ratio returns m / other as a decimal, without rounding to cents.
// The caller must guarantee other is non-zero.
func (m Money) Ratio(other Money) decimal.Decimal {
	return m.dec.Div(other.dec)
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, 1 if greater.
func (m Money) Cmp(other Money) int {
	return m.dec.Cmp(other.dec)
}

// Equal reports exact equality of the scaled values.
func (m Money) Equal(other Money) bool {
	return m.dec.Equal(other.dec)
}

// IsZero reports whether the amount is exactly 0.00.
func (m Money) IsZero() bool {
	return m.dec.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.dec.IsNegative()
}

// String renders the amount with two decimal places, e.g. "123.40".
func (m Money) String() string {
	return m.dec.StringFixed(2)
}
