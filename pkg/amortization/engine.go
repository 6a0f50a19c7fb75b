// Package amortization implements the loan amortization engine: a pure,
// deterministic month-by-month simulation of a loan's payment schedule,
// including extra principal payments and early payoff detection. All monetary
// arithmetic is decimal, so a completed schedule ends at a balance of exactly
// zero rather than within float error of it.
package amortization

import (
	"fmt"

	"github.com/hypotools/amortize/pkg/constants"
	"github.com/hypotools/amortize/pkg/loan"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Entry holds the values for one simulated month.
type Entry struct {
	PaymentNumber       int
	StartingBalance     decimal.Decimal
	EndingBalance       decimal.Decimal
	InterestPaid        decimal.Decimal
	PrincipalPaid       decimal.Decimal
	ExtraPaymentApplied decimal.Decimal
	InterestPaidTotal   decimal.Decimal
	PrincipalPaidTotal  decimal.Decimal
}

// Schedule is the ordered sequence of monthly entries for a fully simulated
// loan, together with its aggregate totals. It is created once per Simulate
// call and never mutated afterwards.
type Schedule struct {
	Entries        []Entry
	TotalInterest  decimal.Decimal
	TotalPrincipal decimal.Decimal
}

// Payments returns the number of payments in the schedule.
func (s *Schedule) Payments() int {
	return len(s.Entries)
}

// FinalBalance returns the ending balance of the last entry, or zero for an
// empty schedule.
func (s *Schedule) FinalBalance() decimal.Decimal {
	if len(s.Entries) == 0 {
		return decimal.Zero
	}
	return s.Entries[len(s.Entries)-1].EndingBalance
}

// Engine simulates amortization schedules. The zero-cost logger defaulting
// follows the rest of this module: a nil logger means no logging.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an engine with the given logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// state carries the running totals of a simulation between steps.
type state struct {
	monthIndex     int
	balance        decimal.Decimal
	interestTotal  decimal.Decimal
	principalTotal decimal.Decimal
}

func newState(conf loan.Configuration) state {
	return state{
		balance:        conf.Principal().Decimal(),
		interestTotal:  decimal.Zero,
		principalTotal: decimal.Zero,
	}
}

// step advances the simulation by one month and returns the resulting entry.
// This is the single per-month calculation in the module; Simulate and
// ProjectBalance both run it, so they cannot diverge.
func (e *Engine) step(conf loan.Configuration, plan loan.ExtraPaymentPlan, st *state) (Entry, error) {
	st.monthIndex++

	interest := st.balance.Mul(conf.AnnualRate().MonthlyRate())
	principalFromRegular := conf.MonthlyPayment().Decimal().Sub(interest)
	if !principalFromRegular.IsPositive() {
		return Entry{}, fmt.Errorf("month %d: %w", st.monthIndex, ErrNonAmortizing)
	}

	extra := plan.Amount(st.monthIndex)
	if extra.IsPositive() {
		e.logger.Debug("applying extra principal payment",
			zap.String("op", "amortization.step"),
			zap.Int("month", st.monthIndex),
			zap.String("amount", extra.StringFixed(2)),
		)
	}

	principalPaid := principalFromRegular.Add(extra)
	if principalPaid.GreaterThan(st.balance) {
		// Final payment: cap to exact payoff, never overshoot negative.
		e.logger.Debug("capping final principal payment to remaining balance",
			zap.String("op", "amortization.step"),
			zap.Int("month", st.monthIndex),
			zap.String("balance", st.balance.StringFixed(2)),
		)
		principalPaid = st.balance
	}
	extraApplied := decimal.Max(decimal.Zero, decimal.Min(extra, principalPaid.Sub(principalFromRegular)))

	entry := Entry{
		PaymentNumber:       st.monthIndex,
		StartingBalance:     st.balance,
		InterestPaid:        interest,
		PrincipalPaid:       principalPaid,
		ExtraPaymentApplied: extraApplied,
	}

	st.balance = st.balance.Sub(principalPaid)
	st.interestTotal = st.interestTotal.Add(interest)
	st.principalTotal = st.principalTotal.Add(principalPaid)

	entry.EndingBalance = st.balance
	entry.InterestPaidTotal = st.interestTotal
	entry.PrincipalPaidTotal = st.principalTotal
	return entry, nil
}

// Simulate produces the full amortization schedule for the given loan and
// extra-payment plan. It is a pure function of its inputs: identical inputs
// always yield an identical schedule.
func (e *Engine) Simulate(conf loan.Configuration, plan loan.ExtraPaymentPlan) (*Schedule, error) {
	if !conf.MonthlyPayment().Decimal().GreaterThan(conf.FirstMonthInterest()) {
		return nil, fmt.Errorf("payment %s does not exceed first-month interest %s: %w",
			conf.MonthlyPayment(), conf.FirstMonthInterest().StringFixed(2), ErrNonAmortizing)
	}

	st := newState(conf)
	schedule := &Schedule{Entries: make([]Entry, 0, conf.TermMonths().Int())}

	for st.balance.IsPositive() {
		if st.monthIndex >= constants.MaxScheduleIterations {
			return nil, fmt.Errorf("no payoff after %d payments: %w", st.monthIndex, ErrEndlessLoop)
		}
		entry, err := e.step(conf, plan, &st)
		if err != nil {
			return nil, err
		}
		schedule.Entries = append(schedule.Entries, entry)
	}

	schedule.TotalInterest = st.interestTotal
	schedule.TotalPrincipal = st.principalTotal

	e.logger.Debug("schedule complete",
		zap.String("op", "amortization.Simulate"),
		zap.Int("payments", schedule.Payments()),
		zap.String("totalInterest", schedule.TotalInterest.StringFixed(2)),
	)
	return schedule, nil
}

// Simulate runs a simulation without logging.
func Simulate(conf loan.Configuration, plan loan.ExtraPaymentPlan) (*Schedule, error) {
	return NewEngine(nil).Simulate(conf, plan)
}
