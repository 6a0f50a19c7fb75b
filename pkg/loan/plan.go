package loan

import (
	"fmt"
	"sort"

	"github.com/hypotools/amortize/pkg/money"
	"github.com/shopspring/decimal"
)

// ExtraPaymentPlan is a sparse mapping from 1-based payment month index to an
// extra principal amount. Months without an entry carry no extra payment.
type ExtraPaymentPlan struct {
	payments map[int]decimal.Decimal
}

// NewExtraPaymentPlan builds a plan from a month -> amount map. Month indices
// must be positive and amounts non-negative.
func NewExtraPaymentPlan(payments map[int]float64) (ExtraPaymentPlan, error) {
	plan := ExtraPaymentPlan{payments: make(map[int]decimal.Decimal, len(payments))}
	for month, amount := range payments {
		if err := plan.Set(month, amount); err != nil {
			return ExtraPaymentPlan{}, err
		}
	}
	return plan, nil
}

// EmptyExtraPaymentPlan returns a plan with no extra payments.
func EmptyExtraPaymentPlan() ExtraPaymentPlan {
	return ExtraPaymentPlan{payments: map[int]decimal.Decimal{}}
}

// Set records an extra payment for the given 1-based month, replacing any
// previous amount for that month.
func (p *ExtraPaymentPlan) Set(month int, amount float64) error {
	if month < 1 {
		return &money.ValidationError{Field: "extraPaymentMonth", Reason: money.ReasonBelowMinimum, Value: fmt.Sprintf("%d", month)}
	}
	m, err := money.FromFloat(amount)
	if err != nil {
		return err
	}
	if p.payments == nil {
		p.payments = make(map[int]decimal.Decimal)
	}
	p.payments[month] = m.Decimal()
	return nil
}

// Amount returns the extra principal scheduled for the given month, or zero.
func (p ExtraPaymentPlan) Amount(month int) decimal.Decimal {
	if amount, ok := p.payments[month]; ok {
		return amount
	}
	return decimal.Zero
}

// Months returns the scheduled month indices in ascending order.
func (p ExtraPaymentPlan) Months() []int {
	months := make([]int, 0, len(p.payments))
	for month := range p.payments {
		months = append(months, month)
	}
	sort.Ints(months)
	return months
}

// IsEmpty reports whether the plan has no extra payments.
func (p ExtraPaymentPlan) IsEmpty() bool {
	return len(p.payments) == 0
}

// Total returns the sum of all scheduled extra payments.
func (p ExtraPaymentPlan) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range p.payments {
		total = total.Add(amount)
	}
	return total
}
