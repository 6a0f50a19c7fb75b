package amortization

import (
	"fmt"
	"math"

	"github.com/hypotools/amortize/pkg/constants"
	"github.com/hypotools/amortize/pkg/loan"
	"github.com/hypotools/amortize/pkg/money"
	"github.com/shopspring/decimal"
)

// Snapshot describes the state of a running loan at a point in time. It is
// derived on demand and never persisted.
type Snapshot struct {
	CurrentBalance    decimal.Decimal
	MonthsElapsed     int
	RemainingPayments int
	RemainingInterest decimal.Decimal
}

// ProjectBalance replays the engine's per-month step for exactly
// monthsElapsed iterations (or until payoff, whichever comes first) and
// derives the outstanding balance plus the projected remaining payments and
// interest.
func (e *Engine) ProjectBalance(conf loan.Configuration, plan loan.ExtraPaymentPlan, monthsElapsed int) (Snapshot, error) {
	if monthsElapsed < 0 {
		return Snapshot{}, &money.ValidationError{
			Field:  "monthsElapsed",
			Reason: money.ReasonBelowMinimum,
			Value:  fmt.Sprintf("%d", monthsElapsed),
		}
	}

	if !conf.MonthlyPayment().Decimal().GreaterThan(conf.FirstMonthInterest()) {
		return Snapshot{}, fmt.Errorf("payment %s does not exceed first-month interest %s: %w",
			conf.MonthlyPayment(), conf.FirstMonthInterest().StringFixed(2), ErrNonAmortizing)
	}

	st := newState(conf)
	for st.monthIndex < monthsElapsed && st.balance.IsPositive() {
		if _, err := e.step(conf, plan, &st); err != nil {
			return Snapshot{}, err
		}
	}

	snapshot := Snapshot{
		CurrentBalance:    st.balance,
		MonthsElapsed:     monthsElapsed,
		RemainingInterest: decimal.Zero,
	}

	if !st.balance.IsPositive() {
		// Paid off at or before the elapsed point.
		return snapshot, nil
	}

	remaining, err := remainingPayments(st.balance, conf.AnnualRate().MonthlyRate(), conf.MonthlyPayment().Decimal())
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.RemainingPayments = remaining

	// Continue the same step sequence to payoff to accumulate the interest
	// still owed; this honors extra payments scheduled past the elapsed point.
	interestSoFar := st.interestTotal
	for st.balance.IsPositive() {
		if st.monthIndex >= constants.MaxScheduleIterations {
			return Snapshot{}, fmt.Errorf("no payoff after %d payments: %w", st.monthIndex, ErrEndlessLoop)
		}
		if _, err := e.step(conf, plan, &st); err != nil {
			return Snapshot{}, err
		}
	}
	snapshot.RemainingInterest = st.interestTotal.Sub(interestSoFar)

	return snapshot, nil
}

// ProjectBalance runs a projection without logging.
func ProjectBalance(conf loan.Configuration, plan loan.ExtraPaymentPlan, monthsElapsed int) (Snapshot, error) {
	return NewEngine(nil).ProjectBalance(conf, plan, monthsElapsed)
}

// remainingPayments inverts the annuity formula to get the number of whole
// months needed to clear balance b at monthly rate r with payment m:
// -ln(1 - b*r/m) / ln(1+r), rounded up.
func remainingPayments(b, r, m decimal.Decimal) (int, error) {
	if !b.IsPositive() {
		return 0, nil
	}
	if r.IsZero() {
		return int(b.Div(m).Ceil().IntPart()), nil
	}

	bf, _ := b.Float64()
	rf, _ := r.Float64()
	mf, _ := m.Float64()

	arg := 1 - bf*rf/mf
	if arg <= 0 {
		// The payment can never cover the interest on this balance.
		return 0, fmt.Errorf("balance %s at payment %s: %w", b.StringFixed(2), m.StringFixed(2), ErrNonAmortizing)
	}
	return int(math.Ceil(-math.Log(arg) / math.Log(1+rf))), nil
}
