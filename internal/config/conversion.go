// Package config defines conversion utilities for configuration objects.
package config

import (
	"github.com/iwvelando/loan-amortizer/pkg/amortization"
	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/shopspring/decimal"
)

// ToLoanInput converts the configured loan into an amortization.LoanInput.
// Field errors are reported as *amortization.InvalidInputError.
func (c *Configuration) ToLoanInput() (amortization.LoanInput, error) {
	return c.Loan.ToLoanInput()
}

// ToLoanInput converts a LoanConfig into an amortization.LoanInput.
func (loan LoanConfig) ToLoanInput() (amortization.LoanInput, error) {
	return BuildLoanInput(
		decimal.NewFromFloat(loan.Principal),
		decimal.NewFromFloat(loan.AnnualRatePercent),
		loan.TermLength,
		loan.TermUnit,
		loan.StartDate,
		loan.CompoundingFrequency,
		loan.PaymentFrequency,
	)
}

// BuildLoanInput parses the textual loan fields shared by the config file and
// the HTTP API and validates the result. Empty enum fields take the defaults
// of years, monthly compounding and monthly payments.
func BuildLoanInput(principal, annualRatePercent decimal.Decimal, termLength int,
	termUnit, startDate, compoundingFrequency, paymentFrequency string) (amortization.LoanInput, error) {
	unit := amortization.TermUnitYears
	if termUnit != "" {
		parsed, err := amortization.ParseTermUnit(termUnit)
		if err != nil {
			return amortization.LoanInput{}, err
		}
		unit = parsed
	}

	compounding := amortization.CompoundMonthly
	if compoundingFrequency != "" {
		parsed, err := amortization.ParseCompoundingFrequency(compoundingFrequency)
		if err != nil {
			return amortization.LoanInput{}, err
		}
		compounding = parsed
	}

	payments := amortization.PayMonthly
	if paymentFrequency != "" {
		parsed, err := amortization.ParsePaymentFrequency(paymentFrequency)
		if err != nil {
			return amortization.LoanInput{}, err
		}
		payments = parsed
	}

	start, err := amortization.ParseStartDate(startDate)
	if err != nil {
		return amortization.LoanInput{}, err
	}

	input := amortization.LoanInput{
		Principal:            principal,
		AnnualRatePercent:    annualRatePercent,
		TermLength:           termLength,
		TermUnit:             unit,
		StartDate:            start,
		CompoundingFrequency: compounding,
		PaymentFrequency:     payments,
	}
	if err := input.Validate(); err != nil {
		return amortization.LoanInput{}, err
	}
	return input, nil
}

// ToExtraPayments converts the configured extra payments. Validation is left
// to the engine so errors carry the index the engine reports.
func (c *Configuration) ToExtraPayments() []amortization.ExtraPayment {
	extras := make([]amortization.ExtraPayment, 0, len(c.ExtraPayments))
	for _, extra := range c.ExtraPayments {
		extras = append(extras, amortization.ExtraPayment{
			PaymentNumber: extra.PaymentNumber,
			Amount:        decimal.NewFromFloat(extra.Amount),
			Recurring:     extra.Recurring,
		})
	}
	return extras
}

// EditAmount returns the configured edit as a decimal amount.
func (e *EditConfig) EditAmount() decimal.Decimal {
	if e == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(e.Amount)
}

// FromLoanInput builds the file form of a loan and its extra payments, the
// inverse of ToLoanInput and ToExtraPayments.
func FromLoanInput(loan amortization.LoanInput, extraPayments []amortization.ExtraPayment) Configuration {
	conf := Configuration{
		Loan: LoanConfig{
			Principal:            loan.Principal.InexactFloat64(),
			AnnualRatePercent:    loan.AnnualRatePercent.InexactFloat64(),
			TermLength:           loan.TermLength,
			TermUnit:             loan.TermUnit.String(),
			StartDate:            loan.StartDate.Format(constants.DateLayout),
			CompoundingFrequency: loan.CompoundingFrequency.String(),
			PaymentFrequency:     loan.PaymentFrequency.String(),
		},
	}
	for _, extra := range extraPayments {
		conf.ExtraPayments = append(conf.ExtraPayments, ExtraPaymentConfig{
			PaymentNumber: extra.PaymentNumber,
			Amount:        extra.Amount.InexactFloat64(),
			Recurring:     extra.Recurring,
		})
	}
	return conf
}
