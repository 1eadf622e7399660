package amortization

import (
	"math"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/datetime"
	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// MaxTermYears bounds the term so a schedule never exceeds a few thousand rows.
const MaxTermYears = 100

// PaymentsPerYear returns the number of payments made per year.
func (f PaymentFrequency) PaymentsPerYear() (int, bool) {
	switch f {
	case PayMonthly:
		return constants.MonthlyPaymentsPerYear, true
	case PayBiweekly:
		return constants.BiweeklyPaymentsPerYear, true
	case PayWeekly:
		return constants.WeeklyPaymentsPerYear, true
	case PayQuarterly:
		return constants.QuarterlyPaymentsPerYear, true
	case PayAnnual:
		return constants.AnnualPaymentsPerYear, true
	}
	return 0, false
}

// PeriodsPerYear returns the number of compounding periods per year. Continuous
// compounding reports 0.
func (f CompoundingFrequency) PeriodsPerYear() (int, bool) {
	switch f {
	case CompoundMonthly:
		return 12, true
	case CompoundQuarterly:
		return 4, true
	case CompoundSemiannual:
		return 2, true
	case CompoundAnnual:
		return 1, true
	case CompoundDaily:
		return constants.DaysPerYear, true
	case CompoundContinuous:
		return 0, true
	}
	return 0, false
}

// TotalMonths normalizes the term to months.
func (l LoanInput) TotalMonths() int {
	if l.TermUnit == TermUnitYears {
		return l.TermLength * constants.MonthsPerYear
	}
	return l.TermLength
}

// ParseStartDate parses a start date, reporting failures as InvalidInputError.
func ParseStartDate(value string) (time.Time, error) {
	t, err := datetime.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, invalidInput("startDate", "expected %s, got %q", constants.DateLayout, value)
	}
	return t, nil
}

// Validate checks every LoanInput field.
func (l LoanInput) Validate() error {
	if mathutil.Round(l.Principal).LessThan(mathutil.Cent) {
		return invalidInput("principal", "must be at least %s, got %s", mathutil.Cent, l.Principal)
	}
	if l.AnnualRatePercent.IsNegative() {
		return invalidInput("annualRatePercent", "must not be negative, got %s", l.AnnualRatePercent)
	}
	if l.TermLength <= 0 {
		return invalidInput("termLength", "must be greater than zero, got %d", l.TermLength)
	}
	if l.TermUnit != TermUnitMonths && l.TermUnit != TermUnitYears {
		return invalidInput("termUnit", "unsupported term unit %q", l.TermUnit)
	}
	if l.TotalMonths() > MaxTermYears*constants.MonthsPerYear {
		return invalidInput("termLength", "must not exceed %d years", MaxTermYears)
	}
	if l.StartDate.IsZero() {
		return invalidInput("startDate", "is required")
	}
	if _, ok := l.CompoundingFrequency.PeriodsPerYear(); !ok {
		return invalidInput("compoundingFrequency", "unsupported compounding frequency %q", l.CompoundingFrequency)
	}
	if _, ok := l.PaymentFrequency.PaymentsPerYear(); !ok {
		return invalidInput("paymentFrequency", "unsupported payment frequency %q", l.PaymentFrequency)
	}
	return nil
}

// NumberOfPayments returns the nominal number of payment periods N for a loan:
// the term in months times payments per year over twelve, rounded half-up and
// never less than one.
func NumberOfPayments(loan LoanInput) (int, error) {
	if err := loan.Validate(); err != nil {
		return 0, err
	}
	return numberOfPayments(loan), nil
}

func numberOfPayments(loan LoanInput) int {
	perYear, _ := loan.PaymentFrequency.PaymentsPerYear()
	n := (loan.TotalMonths()*perYear + constants.MonthsPerYear/2) / constants.MonthsPerYear
	if n < 1 {
		n = 1
	}
	return n
}

// PeriodicRate returns the interest rate applied per payment period.
func PeriodicRate(loan LoanInput) (float64, error) {
	if err := loan.Validate(); err != nil {
		return 0, err
	}
	return periodicRate(loan), nil
}

// periodicRate converts the nominal annual rate to the compounding period,
// compounds up to an effective annual rate, then converts down to the payment
// period. With m compounding periods and p payments per year that collapses to
// (1 + a/m)^(m/p) - 1; continuous compounding is e^(a/p) - 1.
func periodicRate(loan LoanInput) float64 {
	annual := mathutil.PercentToFraction(loan.AnnualRatePercent)
	if annual == 0 {
		return 0
	}
	p, _ := loan.PaymentFrequency.PaymentsPerYear()
	m, _ := loan.CompoundingFrequency.PeriodsPerYear()
	if m == 0 {
		return math.Expm1(annual / float64(p))
	}
	if m == p {
		return annual / float64(m)
	}
	return math.Expm1(float64(m) / float64(p) * math.Log1p(annual/float64(m)))
}

// LevelPayment is the standard annuity payment P*r / (1 - (1+r)^-n), or P/n for
// an interest-free loan, rounded to cents.
func LevelPayment(principal decimal.Decimal, rate float64, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	if rate == 0 {
		return roundLevelPayment(principal.Div(decimal.NewFromInt(int64(n))), n)
	}
	discount := -math.Expm1(-float64(n) * math.Log1p(rate))
	return roundLevelPayment(decimal.NewFromFloat(principal.InexactFloat64()*rate/discount), n)
}

// roundLevelPayment rounds an exact payment to cents. When rounding up would
// overpay by a whole payment across the term, as it does for payments of
// about a cent, the payment is truncated instead so the loan still runs all n
// periods and the final period sweeps the remainder.
func roundLevelPayment(exact decimal.Decimal, n int) decimal.Decimal {
	rounded := mathutil.Round(exact)
	if rounded.Sub(exact).Mul(decimal.NewFromInt(int64(n))).GreaterThanOrEqual(exact) {
		return exact.Truncate(constants.CurrencyPlaces)
	}
	return rounded
}

// PaymentDate returns the date of payment number n, counted from the start date
// rather than the previous payment so month-end clamping never drifts.
func PaymentDate(start time.Time, frequency PaymentFrequency, n int) time.Time {
	switch frequency {
	case PayBiweekly:
		return datetime.AddDays(start, 14*n)
	case PayWeekly:
		return datetime.AddDays(start, 7*n)
	case PayQuarterly:
		return datetime.AddMonths(start, 3*n)
	case PayAnnual:
		return datetime.AddMonths(start, constants.MonthsPerYear*n)
	default:
		return datetime.AddMonths(start, n)
	}
}
