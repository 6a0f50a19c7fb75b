package loan

import (
	"errors"
	"math"
	"testing"

	"github.com/hypotools/amortize/pkg/money"
	"github.com/shopspring/decimal"
)

func reasonOf(t *testing.T, err error) money.Reason {
	t.Helper()
	var verr *money.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return verr.Reason
}

func TestNewLoanAmount(t *testing.T) {
	tests := []struct {
		name       string
		input      float64
		wantErr    bool
		wantReason money.Reason
	}{
		{"Typical mortgage", 250000, false, ""},
		{"Lower bound", 1000, false, ""},
		{"Upper bound", 10_000_000, false, ""},
		{"Below minimum", 999.99, true, money.ReasonBelowMinimum},
		{"Above maximum", 10_000_000.01, true, money.ReasonAboveMaximum},
		{"Negative", -50000, true, money.ReasonBelowMinimum},
		{"NaN", math.NaN(), true, money.ReasonInvalidNumber},
		{"Infinity", math.Inf(1), true, money.ReasonInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewLoanAmount(tt.input)
			if tt.wantErr {
				if got := reasonOf(t, err); got != tt.wantReason {
					t.Errorf("NewLoanAmount(%v) reason = %s, expected %s", tt.input, got, tt.wantReason)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLoanAmount(%v) unexpected error: %v", tt.input, err)
			}
			if a.Float64() != tt.input {
				t.Errorf("round trip failed: got %v, expected %v", a.Float64(), tt.input)
			}
		})
	}
}

func TestNewInterestRate(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"Typical rate", 3.5, false},
		{"Zero rate", 0.0, false},
		{"High rate", 15.0, false},
		{"Negative", -0.5, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewInterestRate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewInterestRate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && r.Float64() != tt.input {
				t.Errorf("round trip failed: got %v, expected %v", r.Float64(), tt.input)
			}
		})
	}
}

func TestMonthlyRateConvention(t *testing.T) {
	// 6% annual must become exactly 0.005 per month: 6 / 100 / 12.
	r, err := NewInterestRate(6.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.MonthlyRate().String() != "0.005" {
		t.Errorf("MonthlyRate() = %s, expected 0.005", r.MonthlyRate())
	}
}

func TestNewMonthCount(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"One month", 1, false},
		{"Standard term", 360, false},
		{"Upper bound", 600, false},
		{"Zero", 0, true},
		{"Negative", -12, true},
		{"Above maximum", 601, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewMonthCount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewMonthCount(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && c.Int() != tt.input {
				t.Errorf("round trip failed: got %d, expected %d", c.Int(), tt.input)
			}
		})
	}
}

func TestNewConfiguration(t *testing.T) {
	tests := []struct {
		name           string
		principal      float64
		rate           float64
		term           int
		monthlyPayment float64
		wantErr        bool
	}{
		{"Valid configuration", 50000, 5.0, 60, 950, false},
		{"Zero payment", 50000, 5.0, 60, 0, true},
		{"Negative payment", 50000, 5.0, 60, -100, true},
		{"Principal out of range", 100, 5.0, 60, 950, true},
		{"Term out of range", 50000, 5.0, 0, 950, true},
		{"Negative rate", 50000, -1.0, 60, 950, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := NewConfiguration(tt.principal, tt.rate, tt.term, tt.monthlyPayment)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewConfiguration error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if conf.Principal().Float64() != tt.principal {
				t.Errorf("Principal() = %v, expected %v", conf.Principal().Float64(), tt.principal)
			}
			if conf.MonthlyPayment().Float64() != tt.monthlyPayment {
				t.Errorf("MonthlyPayment() = %v, expected %v", conf.MonthlyPayment().Float64(), tt.monthlyPayment)
			}
		})
	}
}

func TestFirstMonthInterest(t *testing.T) {
	conf, err := NewConfiguration(12000, 6.0, 12, 1100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 12000 * 0.005 = 60
	if !conf.FirstMonthInterest().Equal(decimal.NewFromInt(60)) {
		t.Errorf("FirstMonthInterest() = %s, expected 60", conf.FirstMonthInterest())
	}
}
