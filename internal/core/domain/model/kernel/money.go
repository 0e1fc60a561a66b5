package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object for monetary amounts with two-decimal precision.
// It wraps github.com/shopspring/decimal so financial arithmetic never goes
// through binary floating point. All amounts in the system (item subtotals,
// fees, discounts, taxes, tips, totals, courier earnings) are Money.
//
// Money is immutable: arithmetic methods return new values. Amounts are
// rounded half-up to two decimals at construction and after every operation
// that can introduce extra precision.
//
// Example:
//
//	subtotal := kernel.NewMoneyFromFloat(239.00)
//	tax := subtotal.MulFloat(0.16) // 38.24
//	total := subtotal.Add(tax)
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoneyFromFloat creates a Money value from a float64, rounding half-up
// to two decimals. Intended for amounts arriving from JSON payloads.
func NewMoneyFromFloat(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f).Round(2)}
}

// MoneyFromDecimal creates a Money value from a decimal, rounding to two
// decimals. Intended for amounts read back from numeric database columns.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d.Round(2)}
}

// NewNonNegativeMoney creates a Money value that must not be negative.
// Returns a validation error for negative input.
func NewNonNegativeMoney(f float64, paramName string) (Money, error) {
	if f < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("%v must not be negative", f))
	}
	return NewMoneyFromFloat(f), nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulFloat multiplies the amount by a rate and rounds to two decimals.
// Used for percentage discounts and tax computation.
func (m Money) MulFloat(rate float64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromFloat(rate)).Round(2)}
}

// MulInt multiplies the amount by an integer quantity.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// Min returns the smaller of two amounts.
func (m Money) Min(other Money) Money {
	if m.amount.GreaterThan(other.amount) {
		return other
	}
	return m
}

// LessThan reports whether the amount is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for JSON responses. The amount is
// always two-decimal, so the conversion is exact for realistic magnitudes.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the amount with exactly two decimal places, e.g. "342.24".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
