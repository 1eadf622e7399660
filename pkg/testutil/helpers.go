// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"

	"github.com/iwvelando/loan-amortizer/pkg/amortization"
	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// FindPayment finds a payment by number in the schedule.
// Returns a pointer to the entry if found, nil otherwise.
func FindPayment(schedule []amortization.PaymentEntry, number int) *amortization.PaymentEntry {
	for i := range schedule {
		if schedule[i].PaymentNumber == number {
			return &schedule[i]
		}
	}
	return nil
}

// ScheduleViolation describes the first row of a schedule that breaks the
// accounting rules every schedule must follow, or returns "" when none does.
func ScheduleViolation(principal decimal.Decimal, schedule []amortization.PaymentEntry) string {
	if len(schedule) == 0 {
		return "schedule is empty"
	}
	balance := principal
	for i, entry := range schedule {
		if entry.PaymentNumber != i+1 {
			return fmt.Sprintf("row %d is numbered %d", i+1, entry.PaymentNumber)
		}
		if i > 0 && !entry.Date.After(schedule[i-1].Date) {
			return fmt.Sprintf("payment %d is not dated after payment %d", entry.PaymentNumber, i)
		}
		if !entry.PrincipalAmount.Add(entry.InterestAmount).Equal(entry.PaymentAmount) {
			return fmt.Sprintf("payment %d: principal %s + interest %s != payment %s",
				entry.PaymentNumber, entry.PrincipalAmount, entry.InterestAmount, entry.PaymentAmount)
		}
		balance = balance.Sub(entry.PrincipalAmount)
		if !balance.Equal(entry.RemainingBalance) {
			return fmt.Sprintf("payment %d: remaining balance %s, expected %s",
				entry.PaymentNumber, entry.RemainingBalance, balance)
		}
		if balance.IsNegative() {
			return fmt.Sprintf("payment %d: negative balance %s", entry.PaymentNumber, balance)
		}
	}
	if !balance.IsZero() {
		return fmt.Sprintf("final balance is %s, expected 0", balance)
	}
	return ""
}

// FinalPaymentViolation reports when the last payment of a schedule strays
// from the level payment by more than tolerance, or returns "" otherwise.
func FinalPaymentViolation(schedule []amortization.PaymentEntry, level, tolerance decimal.Decimal) string {
	if len(schedule) == 0 {
		return "schedule is empty"
	}
	last := schedule[len(schedule)-1]
	if !mathutil.WithinTolerance(last.PaymentAmount, level, tolerance) {
		return fmt.Sprintf("final payment %d is %s, more than %s from %s",
			last.PaymentNumber, last.PaymentAmount, tolerance, level)
	}
	return ""
}
