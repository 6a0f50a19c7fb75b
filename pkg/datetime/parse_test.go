package datetime

import "testing"

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
	}{
		{"Forward one month", "2025-01", 1, "2025-02"},
		{"Forward across year boundary", "2025-11", 3, "2026-02"},
		{"Backward one month", "2025-01", -1, "2024-12"},
		{"Zero offset", "2025-06", 0, "2025-06"},
		{"Many years forward", "2020-01", 120, "2030-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if err != nil {
				t.Fatalf("OffsetDate(%q, %d) returned error: %v", tt.date, tt.months, err)
			}
			if result != tt.expected {
				t.Errorf("OffsetDate(%q, %d) = %q, expected %q", tt.date, tt.months, result, tt.expected)
			}
		})
	}
}

func TestOffsetDateInvalid(t *testing.T) {
	if _, err := OffsetDate("not-a-date", DateTimeLayout, 1); err == nil {
		t.Errorf("expected error for malformed date")
	}
}

func TestDateBeforeDate(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		expected bool
	}{
		{"Strictly before", "2025-01", "2025-02", true},
		{"Equal dates", "2025-01", "2025-01", false},
		{"After", "2025-03", "2025-02", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DateBeforeDate(tt.first, tt.second)
			if err != nil {
				t.Fatalf("DateBeforeDate returned error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("DateBeforeDate(%q, %q) = %v, expected %v", tt.first, tt.second, result, tt.expected)
			}
		})
	}
}

func TestPaymentDate(t *testing.T) {
	tests := []struct {
		name          string
		startDate     string
		paymentNumber int
		expected      string
	}{
		{"First payment is the start date", "2025-03", 1, "2025-03"},
		{"Twelfth payment", "2025-03", 12, "2026-02"},
		{"Sixtieth payment", "2020-01", 60, "2024-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := PaymentDate(tt.startDate, tt.paymentNumber)
			if err != nil {
				t.Fatalf("PaymentDate returned error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("PaymentDate(%q, %d) = %q, expected %q",
					tt.startDate, tt.paymentNumber, result, tt.expected)
			}
		})
	}
}
