package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/hypotools/amortize/pkg/amortization"
	"github.com/hypotools/amortize/pkg/loan"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func testResult(t *testing.T) LoanResult {
	t.Helper()
	conf, err := loan.NewConfiguration(12000, 6.0, 12, 1100)
	if err != nil {
		t.Fatalf("failed to build configuration: %v", err)
	}
	schedule, err := amortization.Simulate(conf, loan.EmptyExtraPaymentPlan())
	if err != nil {
		t.Fatalf("failed to simulate: %v", err)
	}
	return LoanResult{Name: "Test Loan", StartDate: "2025-01", Schedule: schedule}
}

func TestPrettyFormat(t *testing.T) {
	result := testResult(t)

	out := captureStdout(t, func() {
		PrettyFormat([]LoanResult{result})
	})

	if !strings.Contains(out, "--- Schedule for loan Test Loan ---") {
		t.Errorf("PrettyFormat missing loan header")
	}
	if !strings.Contains(out, "Month   | #   | Interest    | Principal   | Extra       | Balance") {
		t.Errorf("PrettyFormat missing table header")
	}
	if !strings.Contains(out, "2025-01") {
		t.Errorf("PrettyFormat missing first payment date label")
	}
	if !strings.Contains(out, "€60.00") {
		t.Errorf("PrettyFormat missing first-month interest value")
	}
	if !strings.Contains(out, "Paid off after 12 payments") {
		t.Errorf("PrettyFormat missing payoff summary")
	}
}

func TestPrettyFormatWithoutStartDate(t *testing.T) {
	result := testResult(t)
	result.StartDate = ""

	out := captureStdout(t, func() {
		PrettyFormat([]LoanResult{result})
	})

	if strings.Contains(out, "2025-01") {
		t.Errorf("PrettyFormat printed a date label without a start date")
	}
}

func TestCsvFormat(t *testing.T) {
	result := testResult(t)

	out := captureStdout(t, func() {
		CsvFormat([]LoanResult{result})
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 13 { // header + 12 payments
		t.Fatalf("CsvFormat produced %d lines, expected 13", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"loan","month","payment_number"`) {
		t.Errorf("CsvFormat missing header, got %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Test Loan","2025-01","1","12000.00","60.00"`) {
		t.Errorf("CsvFormat first data row unexpected: %q", lines[1])
	}
	if !strings.Contains(lines[12], `"0.00"`) {
		t.Errorf("CsvFormat final row should carry zero ending balance: %q", lines[12])
	}
}

func TestPrettySnapshot(t *testing.T) {
	conf, err := loan.NewConfiguration(12000, 6.0, 12, 1100)
	if err != nil {
		t.Fatalf("failed to build configuration: %v", err)
	}
	snapshot, err := amortization.ProjectBalance(conf, loan.EmptyExtraPaymentPlan(), 6)
	if err != nil {
		t.Fatalf("failed to project: %v", err)
	}

	out := captureStdout(t, func() {
		PrettySnapshot("Test Loan", snapshot)
	})

	if !strings.Contains(out, "--- Projection for loan Test Loan after 6 months ---") {
		t.Errorf("PrettySnapshot missing header")
	}
	if !strings.Contains(out, "Remaining payments: 6") {
		t.Errorf("PrettySnapshot missing remaining payments")
	}
}

func TestSnapshotCsv(t *testing.T) {
	conf, err := loan.NewConfiguration(12000, 6.0, 12, 1100)
	if err != nil {
		t.Fatalf("failed to build configuration: %v", err)
	}
	snapshot, err := amortization.ProjectBalance(conf, loan.EmptyExtraPaymentPlan(), 12)
	if err != nil {
		t.Fatalf("failed to project: %v", err)
	}

	out := SnapshotCsv("Test Loan", snapshot)
	if !strings.Contains(out, `"Test Loan","12","0.00","0","0.00"`) {
		t.Errorf("SnapshotCsv unexpected content: %q", out)
	}
}
