// Package policy implements market-specific extra-payment rules. German
// mortgage contracts commonly cap Sondertilgung (special repayment) at a
// percentage of the original principal per loan year; the amortization engine
// itself is policy-agnostic, so callers run these checks before building a
// plan.
package policy

import (
	"fmt"

	"github.com/hypotools/amortize/pkg/constants"
	"github.com/hypotools/amortize/pkg/loan"
	"github.com/hypotools/amortize/pkg/money"
	"github.com/shopspring/decimal"
)

// ViolationError reports a loan year whose scheduled extra payments exceed
// the contractual cap.
type ViolationError struct {
	Year      int
	Allowed   decimal.Decimal
	Requested decimal.Decimal
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("extra payments of %s in loan year %d exceed the allowed %s",
		e.Requested.StringFixed(2), e.Year, e.Allowed.StringFixed(2))
}

// ValidatePlan checks an extra-payment plan against an annual cap expressed
// as a percentage of the original principal. Loan years are counted from the
// first payment: months 1-12 are year 1, 13-24 year 2, and so on. A zero cap
// disables the check.
func ValidatePlan(plan loan.ExtraPaymentPlan, principal loan.LoanAmount, annualCap money.Percentage) error {
	if annualCap.IsZero() || plan.IsEmpty() {
		return nil
	}

	allowed := principal.Decimal().Mul(annualCap.Fraction())

	perYear := make(map[int]decimal.Decimal)
	for _, month := range plan.Months() {
		year := (month-1)/constants.MonthsPerYear + 1
		perYear[year] = perYear[year].Add(plan.Amount(month))
	}

	for _, month := range plan.Months() {
		year := (month-1)/constants.MonthsPerYear + 1
		requested, ok := perYear[year]
		if !ok {
			continue
		}
		if requested.GreaterThan(allowed) {
			return &ViolationError{Year: year, Allowed: allowed, Requested: requested}
		}
		delete(perYear, year)
	}

	return nil
}
