package amortization

import "errors"

var (
	// ErrNonAmortizing indicates the monthly payment does not cover the
	// accruing interest, so the balance can never reach zero.
	ErrNonAmortizing = errors.New("monthly payment does not cover accruing interest")

	// ErrEndlessLoop indicates the simulation exceeded the hard iteration
	// ceiling without paying off the loan.
	ErrEndlessLoop = errors.New("amortization did not converge within the iteration ceiling")
)
