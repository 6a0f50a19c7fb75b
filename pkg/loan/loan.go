// Package loan defines the validated value types describing a loan: the
// principal, the nominal annual interest rate, the term, and the monthly
// payment. Construction validates business ranges so the amortization engine
// never has to guard against malformed numbers.
package loan

import (
	"fmt"

	"github.com/hypotools/amortize/pkg/constants"
	"github.com/hypotools/amortize/pkg/mathutil"
	"github.com/hypotools/amortize/pkg/money"
	"github.com/shopspring/decimal"
)

// LoanAmount is a validated principal amount.
type LoanAmount struct {
	amount decimal.Decimal
}

// NewLoanAmount validates v against the accepted principal range.
func NewLoanAmount(v float64) (LoanAmount, error) {
	if !mathutil.IsFinite(v) {
		return LoanAmount{}, &money.ValidationError{Field: "principal", Reason: money.ReasonInvalidNumber, Value: fmt.Sprintf("%v", v)}
	}
	if v < constants.MinLoanAmount {
		return LoanAmount{}, &money.ValidationError{Field: "principal", Reason: money.ReasonBelowMinimum, Value: fmt.Sprintf("%v", v)}
	}
	if v > constants.MaxLoanAmount {
		return LoanAmount{}, &money.ValidationError{Field: "principal", Reason: money.ReasonAboveMaximum, Value: fmt.Sprintf("%v", v)}
	}
	return LoanAmount{amount: decimal.NewFromFloat(v)}, nil
}

// Decimal returns the principal as a decimal.
func (a LoanAmount) Decimal() decimal.Decimal {
	return a.amount
}

// Float64 returns the principal as a float64; exact round trip for values
// accepted by NewLoanAmount.
func (a LoanAmount) Float64() float64 {
	f, _ := a.amount.Float64()
	return f
}

// InterestRate is a validated nominal annual interest rate in percent.
type InterestRate struct {
	percent decimal.Decimal
}

// NewInterestRate validates v as a non-negative nominal annual percentage.
func NewInterestRate(v float64) (InterestRate, error) {
	if !mathutil.IsFinite(v) {
		return InterestRate{}, &money.ValidationError{Field: "interestRate", Reason: money.ReasonInvalidNumber, Value: fmt.Sprintf("%v", v)}
	}
	if v < 0 {
		return InterestRate{}, &money.ValidationError{Field: "interestRate", Reason: money.ReasonBelowMinimum, Value: fmt.Sprintf("%v", v)}
	}
	return InterestRate{percent: decimal.NewFromFloat(v)}, nil
}

// Percent returns the annual rate in percent, e.g. 5 for 5%.
func (r InterestRate) Percent() decimal.Decimal {
	return r.percent
}

// Float64 returns the annual rate in percent as a float64.
func (r InterestRate) Float64() float64 {
	f, _ := r.percent.Float64()
	return f
}

// MonthlyRate returns the per-month rate as a fraction using the nominal
// convention: annual / 100 / 12. This is the single rate convention used
// everywhere in this module.
func (r InterestRate) MonthlyRate() decimal.Decimal {
	return r.percent.Div(decimal.NewFromInt(constants.PercentageMultiplier * constants.MonthsPerYear))
}

// IsZero reports whether the rate is exactly zero.
func (r InterestRate) IsZero() bool {
	return r.percent.IsZero()
}

// MonthCount is a validated positive number of months.
type MonthCount int

// NewMonthCount validates v as a positive month count within the supported
// term bound.
func NewMonthCount(v int) (MonthCount, error) {
	if v < 1 {
		return 0, &money.ValidationError{Field: "termMonths", Reason: money.ReasonBelowMinimum, Value: fmt.Sprintf("%d", v)}
	}
	if v > constants.MaxTermMonths {
		return 0, &money.ValidationError{Field: "termMonths", Reason: money.ReasonAboveMaximum, Value: fmt.Sprintf("%d", v)}
	}
	return MonthCount(v), nil
}

// Int returns the month count as an int.
func (c MonthCount) Int() int {
	return int(c)
}

// Configuration is an immutable, fully validated loan configuration.
type Configuration struct {
	principal      LoanAmount
	annualRate     InterestRate
	termMonths     MonthCount
	monthlyPayment money.Money
}

// NewConfiguration validates all loan parameters and assembles a
// Configuration. The monthly payment must be strictly positive; whether it
// actually amortizes the loan is checked by the engine, which needs the rate
// arithmetic anyway.
func NewConfiguration(principal, annualRatePercent float64, termMonths int, monthlyPayment float64) (Configuration, error) {
	p, err := NewLoanAmount(principal)
	if err != nil {
		return Configuration{}, err
	}
	r, err := NewInterestRate(annualRatePercent)
	if err != nil {
		return Configuration{}, err
	}
	t, err := NewMonthCount(termMonths)
	if err != nil {
		return Configuration{}, err
	}
	m, err := money.FromFloat(monthlyPayment)
	if err != nil {
		return Configuration{}, &money.ValidationError{Field: "monthlyPayment", Reason: money.ReasonInvalidNumber, Value: fmt.Sprintf("%v", monthlyPayment)}
	}
	if !m.IsPositive() {
		return Configuration{}, &money.ValidationError{Field: "monthlyPayment", Reason: money.ReasonBelowMinimum, Value: fmt.Sprintf("%v", monthlyPayment)}
	}
	return Configuration{principal: p, annualRate: r, termMonths: t, monthlyPayment: m}, nil
}

// Principal returns the loan principal.
func (c Configuration) Principal() LoanAmount {
	return c.principal
}

// AnnualRate returns the nominal annual interest rate.
func (c Configuration) AnnualRate() InterestRate {
	return c.annualRate
}

// TermMonths returns the loan term.
func (c Configuration) TermMonths() MonthCount {
	return c.termMonths
}

// MonthlyPayment returns the regular monthly payment.
func (c Configuration) MonthlyPayment() money.Money {
	return c.monthlyPayment
}

// FirstMonthInterest returns the interest charge of the first month,
// principal * rate/100/12.
func (c Configuration) FirstMonthInterest() decimal.Decimal {
	return c.principal.Decimal().Mul(c.annualRate.MonthlyRate())
}
