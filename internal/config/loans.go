package config

import (
	"fmt"

	"github.com/hypotools/amortize/pkg/amortization"
	"github.com/hypotools/amortize/pkg/loan"
	"github.com/hypotools/amortize/pkg/money"
	"github.com/hypotools/amortize/pkg/policy"
	"go.uber.org/zap"
)

// Loan indicates a loan and its parameters.
type Loan struct {
	Name                    string
	StartDate               string // YYYY-MM
	Principal               float64
	AnnualRate              float64 // nominal annual percent
	TermMonths              int
	MonthlyPayment          float64
	SondertilgungCapPercent float64 // 0 disables the policy check
	ExtraPayments           []ExtraPayment
	Schedule                *amortization.Schedule
}

// ExtraPayment describes a one-off or recurring extra principal payment.
// Month is the 1-based payment index of the first occurrence; EveryMonths of
// 0 means one-off, otherwise the payment repeats at that interval until
// UntilMonth (or the loan term when UntilMonth is 0).
type ExtraPayment struct {
	Month       int
	Amount      float64
	EveryMonths int
	UntilMonth  int
}

// BuildConfiguration converts the raw loan parameters into the validated
// domain configuration.
func (l *Loan) BuildConfiguration() (loan.Configuration, error) {
	conf, err := loan.NewConfiguration(l.Principal, l.AnnualRate, l.TermMonths, l.MonthlyPayment)
	if err != nil {
		return loan.Configuration{}, fmt.Errorf("loan '%s': %w", l.Name, err)
	}
	return conf, nil
}

// BuildPlan expands the configured extra payments, including recurrences,
// into a sparse month-indexed plan.
func (l *Loan) BuildPlan() (loan.ExtraPaymentPlan, error) {
	plan := loan.EmptyExtraPaymentPlan()
	for _, extra := range l.ExtraPayments {
		until := extra.UntilMonth
		if until == 0 || until > l.TermMonths {
			until = l.TermMonths
		}
		if extra.EveryMonths <= 0 {
			if err := plan.Set(extra.Month, extra.Amount); err != nil {
				return loan.ExtraPaymentPlan{}, fmt.Errorf("loan '%s': %w", l.Name, err)
			}
			continue
		}
		for month := extra.Month; month <= until; month += extra.EveryMonths {
			if err := plan.Set(month, extra.Amount); err != nil {
				return loan.ExtraPaymentPlan{}, fmt.Errorf("loan '%s': %w", l.Name, err)
			}
		}
	}
	return plan, nil
}

// GetSchedule computes the amortization schedule for a given Loan, running
// the Sondertilgung policy check first when a cap is configured.
func (l *Loan) GetSchedule(logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	conf, err := l.BuildConfiguration()
	if err != nil {
		return err
	}
	plan, err := l.BuildPlan()
	if err != nil {
		return err
	}

	if l.SondertilgungCapPercent > 0 {
		capPct, err := money.PercentageFromFloat(l.SondertilgungCapPercent)
		if err != nil {
			return fmt.Errorf("loan '%s': %w", l.Name, err)
		}
		if err := policy.ValidatePlan(plan, conf.Principal(), capPct); err != nil {
			return fmt.Errorf("loan '%s': %w", l.Name, err)
		}
	}

	engine := amortization.NewEngine(logger)
	schedule, err := engine.Simulate(conf, plan)
	if err != nil {
		return fmt.Errorf("loan '%s': %w", l.Name, err)
	}

	logger.Debug(fmt.Sprintf("computed schedule for loan %s", l.Name),
		zap.String("op", "config.GetSchedule"),
		zap.Int("payments", schedule.Payments()),
	)
	l.Schedule = schedule
	return nil
}

// ProcessLoans iterates through all loans and produces the amortization
// schedules.
func (conf *Configuration) ProcessLoans(logger *zap.Logger) error {
	for i := range conf.Loans {
		if err := conf.Loans[i].GetSchedule(logger); err != nil {
			return err
		}
	}
	return nil
}

// ProjectLoan computes a point-in-time balance snapshot for the named loan.
func (conf *Configuration) ProjectLoan(logger *zap.Logger, name string, monthsElapsed int) (amortization.Snapshot, error) {
	for i := range conf.Loans {
		if conf.Loans[i].Name != name {
			continue
		}
		loanConf, err := conf.Loans[i].BuildConfiguration()
		if err != nil {
			return amortization.Snapshot{}, err
		}
		plan, err := conf.Loans[i].BuildPlan()
		if err != nil {
			return amortization.Snapshot{}, err
		}
		return amortization.NewEngine(logger).ProjectBalance(loanConf, plan, monthsElapsed)
	}
	return amortization.Snapshot{}, fmt.Errorf("no loan named '%s' in configuration", name)
}
