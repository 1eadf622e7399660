// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"sort"
)

// ExtraPaymentConfig is the subset of an extra payment needed for validation.
type ExtraPaymentConfig struct {
	Name          string
	PaymentNumber int
	Recurring     bool
}

// EditConfig is the subset of a payment edit needed for validation.
type EditConfig struct {
	PaymentNumber int
	Amount        float64
}

// ValidateExtraPayment warns about an extra payment that can never apply.
func ValidateExtraPayment(extra ExtraPaymentConfig, totalPayments int) string {
	if extra.PaymentNumber > totalPayments {
		return fmt.Sprintf("Extra payment '%s' starts at payment %d but the loan only has %d payments - it will never apply",
			extra.Name, extra.PaymentNumber, totalPayments)
	}
	return ""
}

// ValidateEditAmount warns about an edit that repays no principal.
func ValidateEditAmount(edit EditConfig, scheduledPayment float64) string {
	if edit.Amount == 0 {
		return fmt.Sprintf("Payment %d is edited to zero - the skipped principal moves to the final payment", edit.PaymentNumber)
	}
	if edit.Amount < scheduledPayment/2 {
		return fmt.Sprintf("Payment %d is edited to %.2f, less than half the scheduled %.2f - unpaid interest is not capitalized",
			edit.PaymentNumber, edit.Amount, scheduledPayment)
	}
	return ""
}

// PlanValidator checks a loan plan for settings that are valid but probably
// not what the user intended.
type PlanValidator struct {
	TotalPayments    int
	ScheduledPayment float64
	ExtraPayments    []ExtraPaymentConfig
	Edit             *EditConfig
}

// ValidateAll validates the entire plan and returns warnings
func (pv *PlanValidator) ValidateAll() []string {
	var warnings []string

	for _, extra := range pv.ExtraPayments {
		if warning := ValidateExtraPayment(extra, pv.TotalPayments); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	recurringStarts := make(map[int]int)
	for _, extra := range pv.ExtraPayments {
		if extra.Recurring {
			recurringStarts[extra.PaymentNumber]++
		}
	}
	starts := make([]int, 0, len(recurringStarts))
	for number := range recurringStarts {
		starts = append(starts, number)
	}
	sort.Ints(starts)
	for _, number := range starts {
		if count := recurringStarts[number]; count > 1 {
			warnings = append(warnings, fmt.Sprintf("%d recurring extra payments start at payment %d - their amounts are combined",
				count, number))
		}
	}

	if pv.Edit != nil {
		if warning := ValidateEditAmount(*pv.Edit, pv.ScheduledPayment); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
