// Package amortization generates loan amortization schedules.
//
// The engine is a pure function of its inputs: callers pass a LoanInput and
// an optional list of extra payments and receive a freshly allocated schedule.
// Caller-owned slices are never modified or retained. All monetary amounts are
// rounded to cents with round-half-even.
package amortization

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/shopspring/decimal"
)

// TermUnit is the unit TermLength is expressed in.
type TermUnit string

// Supported term units.
const (
	TermUnitMonths TermUnit = "months"
	TermUnitYears  TermUnit = "years"
)

// CompoundingFrequency is how often interest is nominally capitalized.
type CompoundingFrequency string

// Supported compounding frequencies.
const (
	CompoundMonthly    CompoundingFrequency = "monthly"
	CompoundQuarterly  CompoundingFrequency = "quarterly"
	CompoundSemiannual CompoundingFrequency = "semiannual"
	CompoundAnnual     CompoundingFrequency = "annual"
	CompoundDaily      CompoundingFrequency = "daily"
	CompoundContinuous CompoundingFrequency = "continuous"
)

// PaymentFrequency is how often payments are made.
type PaymentFrequency string

// Supported payment frequencies.
const (
	PayMonthly   PaymentFrequency = "monthly"
	PayBiweekly  PaymentFrequency = "biweekly"
	PayWeekly    PaymentFrequency = "weekly"
	PayQuarterly PaymentFrequency = "quarterly"
	PayAnnual    PaymentFrequency = "annual"
)

// LoanInput defines a loan. It is treated as immutable for a calculation run.
type LoanInput struct {
	Principal            decimal.Decimal      `json:"principal"`
	AnnualRatePercent    decimal.Decimal      `json:"annualRatePercent"`
	TermLength           int                  `json:"termLength"`
	TermUnit             TermUnit             `json:"termUnit"`
	StartDate            time.Time            `json:"startDate"`
	CompoundingFrequency CompoundingFrequency `json:"compoundingFrequency"`
	PaymentFrequency     PaymentFrequency     `json:"paymentFrequency"`
}

// ExtraPayment is a principal-only payment applied at a scheduled period, and
// at every later period too when Recurring is set.
type ExtraPayment struct {
	PaymentNumber int             `json:"paymentNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Recurring     bool            `json:"recurring"`
}

// PaymentEntry is one row of a generated schedule.
type PaymentEntry struct {
	PaymentNumber    int             `json:"paymentNumber"`
	Date             time.Time       `json:"date"`
	PaymentAmount    decimal.Decimal `json:"paymentAmount"`
	PrincipalAmount  decimal.Decimal `json:"principalAmount"`
	InterestAmount   decimal.Decimal `json:"interestAmount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// BalanceBefore returns the outstanding principal before this payment.
func (p PaymentEntry) BalanceBefore() decimal.Decimal {
	return p.RemainingBalance.Add(p.PrincipalAmount)
}

// ParseTermUnit converts user input such as "Years" into a TermUnit.
func ParseTermUnit(value string) (TermUnit, error) {
	switch normalize(value) {
	case "months", "month", "m":
		return TermUnitMonths, nil
	case "years", "year", "y":
		return TermUnitYears, nil
	}
	return "", invalidInput("termUnit", "unsupported term unit %q", value)
}

// ParseCompoundingFrequency converts user input into a CompoundingFrequency.
func ParseCompoundingFrequency(value string) (CompoundingFrequency, error) {
	switch normalize(value) {
	case "monthly":
		return CompoundMonthly, nil
	case "quarterly":
		return CompoundQuarterly, nil
	case "semiannual", "semiannually", "biannual":
		return CompoundSemiannual, nil
	case "annual", "annually", "yearly":
		return CompoundAnnual, nil
	case "daily":
		return CompoundDaily, nil
	case "continuous", "continuously":
		return CompoundContinuous, nil
	}
	return "", invalidInput("compoundingFrequency", "unsupported compounding frequency %q", value)
}

// ParsePaymentFrequency converts user input into a PaymentFrequency.
func ParsePaymentFrequency(value string) (PaymentFrequency, error) {
	switch normalize(value) {
	case "monthly":
		return PayMonthly, nil
	case "biweekly", "fortnightly":
		return PayBiweekly, nil
	case "weekly":
		return PayWeekly, nil
	case "quarterly":
		return PayQuarterly, nil
	case "annual", "annually", "yearly":
		return PayAnnual, nil
	}
	return "", invalidInput("paymentFrequency", "unsupported payment frequency %q", value)
}

func normalize(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, "-", "")
	return strings.ReplaceAll(v, "_", "")
}

func (u TermUnit) String() string {
	return string(u)
}

func (f CompoundingFrequency) String() string {
	return string(f)
}

func (f PaymentFrequency) String() string {
	return string(f)
}

func (l LoanInput) String() string {
	return fmt.Sprintf("%s at %s%% for %d %s from %s (%s payments, %s compounding)",
		l.Principal.StringFixed(2), l.AnnualRatePercent.String(), l.TermLength, l.TermUnit,
		l.StartDate.Format(constants.DateLayout), l.PaymentFrequency, l.CompoundingFrequency)
}
