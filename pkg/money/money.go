// Package money provides validated monetary and percentage value types backed
// by arbitrary-precision decimals. All loan arithmetic in this module runs on
// these decimals so accumulated totals do not pick up binary-float drift.
package money

import (
	"fmt"

	"github.com/hypotools/amortize/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Reason tags a validation failure by what rule was broken.
type Reason string

const (
	// ReasonInvalidNumber marks NaN, infinities, and unparsable input.
	ReasonInvalidNumber Reason = "invalid_number"

	// ReasonBelowMinimum marks values under the allowed range.
	ReasonBelowMinimum Reason = "below_minimum"

	// ReasonAboveMaximum marks values over the allowed range.
	ReasonAboveMaximum Reason = "above_maximum"
)

// ValidationError reports a rejected value together with the rule it broke.
type ValidationError struct {
	Field  string
	Reason Reason
	Value  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %s: %s", e.Field, e.Value, e.Reason)
}

// Money is an immutable non-negative monetary amount.
type Money struct {
	amount decimal.Decimal
}

// FromFloat validates v and returns it as Money. NaN, infinities, and
// negative amounts are rejected.
func FromFloat(v float64) (Money, error) {
	if !mathutil.IsFinite(v) {
		return Money{}, &ValidationError{Field: "amount", Reason: ReasonInvalidNumber, Value: fmt.Sprintf("%v", v)}
	}
	if v < 0 {
		return Money{}, &ValidationError{Field: "amount", Reason: ReasonBelowMinimum, Value: fmt.Sprintf("%v", v)}
	}
	return Money{amount: decimal.NewFromFloat(v)}, nil
}

// FromString parses an exact decimal amount, e.g. "1234.56".
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, &ValidationError{Field: "amount", Reason: ReasonInvalidNumber, Value: s}
	}
	if d.IsNegative() {
		return Money{}, &ValidationError{Field: "amount", Reason: ReasonBelowMinimum, Value: s}
	}
	return Money{amount: d}, nil
}

// FromDecimal wraps a decimal that is already known to be a valid amount.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, &ValidationError{Field: "amount", Reason: ReasonBelowMinimum, Value: d.String()}
	}
	return Money{amount: d}, nil
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64. For amounts constructed with
// FromFloat this round-trips exactly.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// String returns the amount rounded to cents.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Percentage is an immutable non-negative percentage value, e.g. 3.5 for 3.5%.
type Percentage struct {
	value decimal.Decimal
}

// PercentageFromFloat validates v and returns it as a Percentage.
func PercentageFromFloat(v float64) (Percentage, error) {
	if !mathutil.IsFinite(v) {
		return Percentage{}, &ValidationError{Field: "percentage", Reason: ReasonInvalidNumber, Value: fmt.Sprintf("%v", v)}
	}
	if v < 0 {
		return Percentage{}, &ValidationError{Field: "percentage", Reason: ReasonBelowMinimum, Value: fmt.Sprintf("%v", v)}
	}
	return Percentage{value: decimal.NewFromFloat(v)}, nil
}

// Decimal returns the percentage as a decimal, e.g. 3.5 for 3.5%.
func (p Percentage) Decimal() decimal.Decimal {
	return p.value
}

// Float64 returns the percentage as a float64.
func (p Percentage) Float64() float64 {
	f, _ := p.value.Float64()
	return f
}

// Fraction returns the percentage as a fraction, e.g. 0.035 for 3.5%.
func (p Percentage) Fraction() decimal.Decimal {
	return p.value.Div(decimal.NewFromInt(100))
}

// IsZero reports whether the percentage is exactly zero.
func (p Percentage) IsZero() bool {
	return p.value.IsZero()
}

// String returns the percentage with a percent sign.
func (p Percentage) String() string {
	return p.value.String() + "%"
}
