package validation

import (
	"strings"
	"testing"
)

func TestValidateExtraPayment(t *testing.T) {
	tests := []struct {
		name          string
		paymentNumber int
		totalPayments int
		expectWarn    bool
	}{
		{"Within term", 12, 360, false},
		{"Final payment", 360, 360, false},
		{"Beyond term", 361, 360, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateExtraPayment(ExtraPaymentConfig{Name: "Bonus", PaymentNumber: tt.paymentNumber}, tt.totalPayments)
			if tt.expectWarn && warning == "" {
				t.Errorf("Expected warning but got none")
			}
			if !tt.expectWarn && warning != "" {
				t.Errorf("Expected no warning but got: %s", warning)
			}
			if tt.expectWarn && !strings.Contains(warning, "Bonus") {
				t.Errorf("Warning should name the extra payment: %s", warning)
			}
		})
	}
}

func TestValidateEditAmount(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		expectWarn bool
	}{
		{"Larger payment", 3000, false},
		{"Slightly smaller payment", 1000, false},
		{"Zero payment", 0, true},
		{"Under half the scheduled payment", 500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateEditAmount(EditConfig{PaymentNumber: 6, Amount: tt.amount}, 1580.17)
			if tt.expectWarn && warning == "" {
				t.Errorf("Expected warning but got none")
			}
			if !tt.expectWarn && warning != "" {
				t.Errorf("Expected no warning but got: %s", warning)
			}
		})
	}
}

func TestPlanValidator(t *testing.T) {
	t.Run("Clean plan", func(t *testing.T) {
		validator := &PlanValidator{
			TotalPayments:    360,
			ScheduledPayment: 1580.17,
			ExtraPayments: []ExtraPaymentConfig{
				{Name: "Monthly extra", PaymentNumber: 1, Recurring: true},
				{Name: "Bonus", PaymentNumber: 12},
			},
			Edit: &EditConfig{PaymentNumber: 24, Amount: 2000},
		}
		if warnings := validator.ValidateAll(); len(warnings) != 0 {
			t.Errorf("Expected no warnings, got %v", warnings)
		}
	})

	t.Run("Plan with problems", func(t *testing.T) {
		validator := &PlanValidator{
			TotalPayments:    360,
			ScheduledPayment: 1580.17,
			ExtraPayments: []ExtraPaymentConfig{
				{Name: "A", PaymentNumber: 1, Recurring: true},
				{Name: "B", PaymentNumber: 1, Recurring: true},
				{Name: "Late", PaymentNumber: 400},
			},
			Edit: &EditConfig{PaymentNumber: 24, Amount: 0},
		}
		warnings := validator.ValidateAll()
		if len(warnings) != 3 {
			t.Fatalf("Expected 3 warnings, got %d: %v", len(warnings), warnings)
		}
	})

	t.Run("Duplicate recurring starts are reported in payment order", func(t *testing.T) {
		validator := &PlanValidator{
			TotalPayments:    360,
			ScheduledPayment: 1580.17,
			ExtraPayments: []ExtraPaymentConfig{
				{Name: "A", PaymentNumber: 90, Recurring: true},
				{Name: "B", PaymentNumber: 90, Recurring: true},
				{Name: "C", PaymentNumber: 7, Recurring: true},
				{Name: "D", PaymentNumber: 7, Recurring: true},
				{Name: "E", PaymentNumber: 45, Recurring: true},
				{Name: "F", PaymentNumber: 45, Recurring: true},
				{Name: "G", PaymentNumber: 45, Recurring: true},
			},
		}
		expected := []string{
			"2 recurring extra payments start at payment 7 - their amounts are combined",
			"3 recurring extra payments start at payment 45 - their amounts are combined",
			"2 recurring extra payments start at payment 90 - their amounts are combined",
		}
		for i := 0; i < 20; i++ {
			warnings := validator.ValidateAll()
			if strings.Join(warnings, "\n") != strings.Join(expected, "\n") {
				t.Fatalf("run %d: warnings = %v, expected %v", i, warnings, expected)
			}
		}
	})
}
