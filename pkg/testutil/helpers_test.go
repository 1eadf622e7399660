package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/loan-amortizer/pkg/amortization"
	"github.com/shopspring/decimal"
)

func entry(number int, payment, principal, interest, balance string) amortization.PaymentEntry {
	return amortization.PaymentEntry{
		PaymentNumber:    number,
		Date:             time.Date(2024, time.Month(number), 1, 0, 0, 0, 0, time.UTC),
		PaymentAmount:    decimal.RequireFromString(payment),
		PrincipalAmount:  decimal.RequireFromString(principal),
		InterestAmount:   decimal.RequireFromString(interest),
		RemainingBalance: decimal.RequireFromString(balance),
	}
}

func TestFindPayment(t *testing.T) {
	schedule := []amortization.PaymentEntry{
		entry(1, "510", "500", "10", "500"),
		entry(2, "505", "500", "5", "0"),
	}

	found := FindPayment(schedule, 2)
	if found == nil {
		t.Fatal("expected to find payment 2")
	}
	if found.PaymentNumber != 2 {
		t.Errorf("expected payment 2, got %d", found.PaymentNumber)
	}

	if FindPayment(schedule, 3) != nil {
		t.Error("expected nil for missing payment")
	}
	if FindPayment(nil, 1) != nil {
		t.Error("expected nil for empty schedule")
	}
}

func TestScheduleViolation(t *testing.T) {
	principal := decimal.NewFromInt(1000)
	tests := []struct {
		name     string
		schedule []amortization.PaymentEntry
		expected string
	}{
		{
			name: "Consistent schedule",
			schedule: []amortization.PaymentEntry{
				entry(1, "510", "500", "10", "500"),
				entry(2, "505", "500", "5", "0"),
			},
		},
		{
			name:     "Empty schedule",
			expected: "empty",
		},
		{
			name: "Split does not add up",
			schedule: []amortization.PaymentEntry{
				entry(1, "511", "500", "10", "500"),
			},
			expected: "principal",
		},
		{
			name: "Balance chain broken",
			schedule: []amortization.PaymentEntry{
				entry(1, "510", "500", "10", "400"),
			},
			expected: "remaining balance",
		},
		{
			name: "Balance left over",
			schedule: []amortization.PaymentEntry{
				entry(1, "510", "500", "10", "500"),
			},
			expected: "final balance",
		},
		{
			name: "Misnumbered",
			schedule: []amortization.PaymentEntry{
				entry(2, "510", "500", "10", "500"),
			},
			expected: "numbered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScheduleViolation(principal, tt.schedule)
			if tt.expected == "" {
				if got != "" {
					t.Errorf("expected no violation, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.expected) {
				t.Errorf("violation %q should mention %q", got, tt.expected)
			}
		})
	}
}

func TestFinalPaymentViolation(t *testing.T) {
	level := decimal.RequireFromString("510")
	tolerance := decimal.RequireFromString("1.00")

	tests := []struct {
		name     string
		schedule []amortization.PaymentEntry
		expected string
	}{
		{
			name: "Within tolerance",
			schedule: []amortization.PaymentEntry{
				entry(1, "510", "500", "10", "500"),
				entry(2, "509.25", "500", "9.25", "0"),
			},
		},
		{
			name: "Outside tolerance",
			schedule: []amortization.PaymentEntry{
				entry(1, "510", "500", "10", "500"),
				entry(2, "505", "500", "5", "0"),
			},
			expected: "final payment 2",
		},
		{
			name:     "Empty schedule",
			expected: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalPaymentViolation(tt.schedule, level, tolerance)
			if tt.expected == "" {
				if got != "" {
					t.Errorf("expected no violation, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.expected) {
				t.Errorf("violation %q should mention %q", got, tt.expected)
			}
		})
	}
}
