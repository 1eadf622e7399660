package config

import (
	"errors"
	"testing"

	"github.com/iwvelando/loan-amortizer/pkg/amortization"
	"github.com/shopspring/decimal"
)

func TestToLoanInput(t *testing.T) {
	tests := []struct {
		name         string
		loan         LoanConfig
		wantErr      bool
		errField     string
		expectUnit   amortization.TermUnit
		expectComp   amortization.CompoundingFrequency
		expectPay    amortization.PaymentFrequency
		expectMonths int
	}{
		{
			name:         "Defaults",
			loan:         LoanConfig{Principal: 250000, AnnualRatePercent: 6.5, TermLength: 30, StartDate: "2024-01-01"},
			expectUnit:   amortization.TermUnitYears,
			expectComp:   amortization.CompoundMonthly,
			expectPay:    amortization.PayMonthly,
			expectMonths: 360,
		},
		{
			name: "Explicit frequencies",
			loan: LoanConfig{
				Principal: 20000, AnnualRatePercent: 3, TermLength: 48, TermUnit: "Months",
				StartDate: "2024-01-31", CompoundingFrequency: "semi-annual", PaymentFrequency: "bi_weekly",
			},
			expectUnit:   amortization.TermUnitMonths,
			expectComp:   amortization.CompoundSemiannual,
			expectPay:    amortization.PayBiweekly,
			expectMonths: 48,
		},
		{
			name:     "Unknown term unit",
			loan:     LoanConfig{Principal: 1000, TermLength: 1, TermUnit: "decades", StartDate: "2024-01-01"},
			wantErr:  true,
			errField: "termUnit",
		},
		{
			name:     "Unknown compounding",
			loan:     LoanConfig{Principal: 1000, TermLength: 1, CompoundingFrequency: "hourly", StartDate: "2024-01-01"},
			wantErr:  true,
			errField: "compoundingFrequency",
		},
		{
			name:     "Unknown payment frequency",
			loan:     LoanConfig{Principal: 1000, TermLength: 1, PaymentFrequency: "daily", StartDate: "2024-01-01"},
			wantErr:  true,
			errField: "paymentFrequency",
		},
		{
			name:     "Bad start date",
			loan:     LoanConfig{Principal: 1000, TermLength: 1, StartDate: "01/02/2024"},
			wantErr:  true,
			errField: "startDate",
		},
		{
			name:     "Missing start date",
			loan:     LoanConfig{Principal: 1000, TermLength: 1},
			wantErr:  true,
			errField: "startDate",
		},
		{
			name:     "Zero principal",
			loan:     LoanConfig{Principal: 0, TermLength: 1, StartDate: "2024-01-01"},
			wantErr:  true,
			errField: "principal",
		},
		{
			name:     "Negative rate",
			loan:     LoanConfig{Principal: 1000, AnnualRatePercent: -1, TermLength: 1, StartDate: "2024-01-01"},
			wantErr:  true,
			errField: "annualRatePercent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := tt.loan.ToLoanInput()
			if tt.wantErr {
				var invalid *amortization.InvalidInputError
				if !errors.As(err, &invalid) {
					t.Fatalf("ToLoanInput() error = %v, expected *InvalidInputError", err)
				}
				if invalid.Field != tt.errField {
					t.Errorf("error field = %s, expected %s", invalid.Field, tt.errField)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToLoanInput() error = %v", err)
			}
			if input.TermUnit != tt.expectUnit {
				t.Errorf("TermUnit = %s, expected %s", input.TermUnit, tt.expectUnit)
			}
			if input.CompoundingFrequency != tt.expectComp {
				t.Errorf("CompoundingFrequency = %s, expected %s", input.CompoundingFrequency, tt.expectComp)
			}
			if input.PaymentFrequency != tt.expectPay {
				t.Errorf("PaymentFrequency = %s, expected %s", input.PaymentFrequency, tt.expectPay)
			}
			if input.TotalMonths() != tt.expectMonths {
				t.Errorf("TotalMonths() = %d, expected %d", input.TotalMonths(), tt.expectMonths)
			}
			if !input.Principal.Equal(decimal.NewFromFloat(tt.loan.Principal)) {
				t.Errorf("Principal = %s, expected %v", input.Principal, tt.loan.Principal)
			}
		})
	}
}

func TestToLoanInputFromFile(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_loan.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	loan, err := config.ToLoanInput()
	if err != nil {
		t.Fatalf("ToLoanInput() error = %v", err)
	}

	schedule, err := amortization.BuildSchedule(loan, nil)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}
	if len(schedule) != 360 {
		t.Errorf("expected 360 payments, got %d", len(schedule))
	}
	if !schedule[0].PaymentAmount.Equal(decimal.RequireFromString("1580.17")) {
		t.Errorf("first payment = %s, expected 1580.17", schedule[0].PaymentAmount)
	}
}

func TestToExtraPayments(t *testing.T) {
	config := Configuration{
		ExtraPayments: []ExtraPaymentConfig{
			{Name: "Monthly", PaymentNumber: 1, Amount: 200, Recurring: true},
			{Name: "Bonus", PaymentNumber: 12, Amount: 5000.55},
		},
	}

	extras := config.ToExtraPayments()
	if len(extras) != 2 {
		t.Fatalf("expected 2 extra payments, got %d", len(extras))
	}
	if !extras[0].Recurring || extras[0].PaymentNumber != 1 || !extras[0].Amount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("unexpected first extra payment %+v", extras[0])
	}
	if extras[1].Recurring || !extras[1].Amount.Equal(decimal.RequireFromString("5000.55")) {
		t.Errorf("unexpected second extra payment %+v", extras[1])
	}

	if len((&Configuration{}).ToExtraPayments()) != 0 {
		t.Errorf("expected no extra payments for empty config")
	}
}

func TestEditAmount(t *testing.T) {
	var edit *EditConfig
	if !edit.EditAmount().IsZero() {
		t.Errorf("nil edit should have zero amount")
	}
	edit = &EditConfig{PaymentNumber: 3, Amount: 2500.5}
	if !edit.EditAmount().Equal(decimal.RequireFromString("2500.5")) {
		t.Errorf("EditAmount() = %s", edit.EditAmount())
	}
}

func TestFromLoanInputRoundTrip(t *testing.T) {
	loan, err := BuildLoanInput(decimal.RequireFromString("175000.50"), decimal.RequireFromString("4.5"), 15,
		"years", "2025-03-15", "quarterly", "biweekly")
	if err != nil {
		t.Fatalf("BuildLoanInput() error = %v", err)
	}
	extras := []amortization.ExtraPayment{{PaymentNumber: 5, Amount: decimal.NewFromInt(250), Recurring: true}}

	conf := FromLoanInput(loan, extras)
	if conf.Loan.StartDate != "2025-03-15" || conf.Loan.PaymentFrequency != "biweekly" {
		t.Errorf("unexpected loan config %+v", conf.Loan)
	}

	back, err := conf.ToLoanInput()
	if err != nil {
		t.Fatalf("ToLoanInput() error = %v", err)
	}
	if !back.Principal.Equal(loan.Principal) || !back.AnnualRatePercent.Equal(loan.AnnualRatePercent) {
		t.Errorf("amounts changed: %s", back)
	}
	if back.CompoundingFrequency != amortization.CompoundQuarterly || back.TermUnit != amortization.TermUnitYears {
		t.Errorf("enums changed: %s", back)
	}
	backExtras := conf.ToExtraPayments()
	if len(backExtras) != 1 || !backExtras[0].Recurring || backExtras[0].PaymentNumber != 5 {
		t.Errorf("extra payments changed: %+v", backExtras)
	}
}
