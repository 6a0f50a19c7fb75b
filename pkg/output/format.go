// Package output provides utilities for formatting and displaying
// amortization schedules and balance projections.
package output

import (
	"fmt"
	"strings"

	"github.com/hypotools/amortize/pkg/amortization"
	"github.com/hypotools/amortize/pkg/datetime"
	"github.com/hypotools/amortize/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LoanResult pairs a simulated schedule with the loan it belongs to.
type LoanResult struct {
	Name      string
	StartDate string // YYYY-MM; optional, used to label payment rows
	Schedule  *amortization.Schedule
}

// paymentLabel returns the date label for a payment row, or the payment
// number when no start date is known.
func paymentLabel(startDate string, paymentNumber int) string {
	if startDate == "" {
		return fmt.Sprintf("%d", paymentNumber)
	}
	date, err := datetime.PaymentDate(startDate, paymentNumber)
	if err != nil {
		return fmt.Sprintf("%d", paymentNumber)
	}
	return date
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []LoanResult) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Printf("--- Schedule for loan %s ---\n", result.Name)
		fmt.Printf("Month   | #   | Interest    | Principal   | Extra       | Balance\n")
		fmt.Printf("_____   | _   | ________    | _________   | _____       | _______\n")
		for _, entry := range result.Schedule.Entries {
			_, _ = p.Printf("%s | %3d | €%.2f | €%.2f | €%.2f | €%.2f\n",
				paymentLabel(result.StartDate, entry.PaymentNumber),
				entry.PaymentNumber,
				entry.InterestPaid.InexactFloat64(),
				entry.PrincipalPaid.InexactFloat64(),
				entry.ExtraPaymentApplied.InexactFloat64(),
				entry.EndingBalance.InexactFloat64(),
			)
		}
		_, _ = p.Printf("Paid off after %d payments with €%.2f total interest\n",
			result.Schedule.Payments(),
			result.Schedule.TotalInterest.InexactFloat64(),
		)
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []LoanResult) {
	fmt.Printf(`"loan","month","payment_number","starting_balance","interest","principal","extra","ending_balance","interest_total","principal_total"`)
	fmt.Printf("\n")
	for _, result := range results {
		for _, entry := range result.Schedule.Entries {
			fmt.Printf(`"%s","%s","%d","%s","%s","%s","%s","%s","%s","%s"`,
				result.Name,
				paymentLabel(result.StartDate, entry.PaymentNumber),
				entry.PaymentNumber,
				entry.StartingBalance.StringFixed(2),
				entry.InterestPaid.StringFixed(2),
				entry.PrincipalPaid.StringFixed(2),
				entry.ExtraPaymentApplied.StringFixed(2),
				entry.EndingBalance.StringFixed(2),
				entry.InterestPaidTotal.StringFixed(2),
				entry.PrincipalPaidTotal.StringFixed(2),
			)
			fmt.Printf("\n")
		}
	}
}

// PrettySnapshot outputs a one-loan balance projection summary.
func PrettySnapshot(name string, snapshot amortization.Snapshot) {
	fmt.Printf("--- Projection for loan %s after %d months ---\n", name, snapshot.MonthsElapsed)
	fmt.Printf("Current balance:    %s\n", format.DecimalCurrency(snapshot.CurrentBalance))
	fmt.Printf("Remaining payments: %d\n", snapshot.RemainingPayments)
	fmt.Printf("Remaining interest: %s\n", format.DecimalCurrency(snapshot.RemainingInterest))
}

// SnapshotCsv returns the projection as a single CSV line with header.
func SnapshotCsv(name string, snapshot amortization.Snapshot) string {
	var b strings.Builder
	b.WriteString(`"loan","months_elapsed","current_balance","remaining_payments","remaining_interest"` + "\n")
	b.WriteString(fmt.Sprintf(`"%s","%d","%s","%d","%s"`,
		name,
		snapshot.MonthsElapsed,
		snapshot.CurrentBalance.StringFixed(2),
		snapshot.RemainingPayments,
		snapshot.RemainingInterest.StringFixed(2),
	) + "\n")
	return b.String()
}
