package amortization

import (
	"time"

	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// PaymentSummary holds aggregate statistics for a generated schedule.
type PaymentSummary struct {
	ScheduledPayment decimal.Decimal `json:"scheduledPayment"`
	TotalInterest    decimal.Decimal `json:"totalInterest"`
	TotalPrincipal   decimal.Decimal `json:"totalPrincipal"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	PayoffDate       time.Time       `json:"payoffDate"`
	NumberOfPayments int             `json:"numberOfPayments"`
	NominalPayments  int             `json:"nominalPayments"`
	PeriodicRate     float64         `json:"periodicRate"`
}

// YearlySummaryEntry aggregates the payments made in one calendar year.
type YearlySummaryEntry struct {
	Year            int             `json:"year"`
	TotalPayments   decimal.Decimal `json:"totalPayments"`
	TotalPrincipal  decimal.Decimal `json:"totalPrincipal"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	EndingBalance   decimal.Decimal `json:"endingBalance"`
	PaymentCount    int             `json:"paymentCount"`
}

// Savings compares a schedule against the same loan without extra payments
// or edits.
type Savings struct {
	BaselineInterest   decimal.Decimal `json:"baselineInterest"`
	ActualInterest     decimal.Decimal `json:"actualInterest"`
	InterestSaved      decimal.Decimal `json:"interestSaved"`
	BaselinePayments   int             `json:"baselinePayments"`
	PaymentsSaved      int             `json:"paymentsSaved"`
	BaselinePayoffDate time.Time       `json:"baselinePayoffDate"`
}

// Summarize derives aggregate statistics from a schedule without regenerating
// it. An empty schedule yields a zero summary.
func Summarize(loan LoanInput, schedule []PaymentEntry) PaymentSummary {
	summary := PaymentSummary{
		ScheduledPayment: decimal.Zero,
		TotalInterest:    decimal.Zero,
		TotalPrincipal:   decimal.Zero,
		TotalPaid:        decimal.Zero,
	}
	if len(schedule) == 0 {
		return summary
	}

	for _, entry := range schedule {
		summary.TotalInterest = mathutil.Sum(summary.TotalInterest, entry.InterestAmount)
		summary.TotalPrincipal = mathutil.Sum(summary.TotalPrincipal, entry.PrincipalAmount)
	}
	summary.TotalPaid = mathutil.Sum(summary.TotalPrincipal, summary.TotalInterest)
	summary.PayoffDate = schedule[len(schedule)-1].Date
	summary.NumberOfPayments = len(schedule)

	if t, err := deriveTerms(loan); err == nil {
		summary.ScheduledPayment = t.payment
		summary.NominalPayments = t.n
		summary.PeriodicRate = t.rate
	}
	return summary
}

// ToYearlyView groups a schedule by the calendar year of each payment date.
// Partial first and last years only reflect the payments actually present.
func ToYearlyView(schedule []PaymentEntry) []YearlySummaryEntry {
	var years []YearlySummaryEntry
	for _, entry := range schedule {
		year := entry.Date.Year()
		if len(years) == 0 || years[len(years)-1].Year != year {
			years = append(years, YearlySummaryEntry{
				Year:            year,
				TotalPayments:   decimal.Zero,
				TotalPrincipal:  decimal.Zero,
				TotalInterest:   decimal.Zero,
				StartingBalance: entry.BalanceBefore(),
			})
		}
		current := &years[len(years)-1]
		current.TotalPayments = mathutil.Sum(current.TotalPayments, entry.PaymentAmount)
		current.TotalPrincipal = mathutil.Sum(current.TotalPrincipal, entry.PrincipalAmount)
		current.TotalInterest = mathutil.Sum(current.TotalInterest, entry.InterestAmount)
		current.EndingBalance = entry.RemainingBalance
		current.PaymentCount++
	}
	return years
}

// CompareToBaseline reports how much interest and how many payments a schedule
// saves relative to the loan's unmodified schedule.
func CompareToBaseline(loan LoanInput, schedule []PaymentEntry) (Savings, error) {
	return defaultEngine.CompareToBaseline(loan, schedule)
}

// CompareToBaseline reports how much interest and how many payments a schedule
// saves relative to the loan's unmodified schedule.
func (e *Engine) CompareToBaseline(loan LoanInput, schedule []PaymentEntry) (Savings, error) {
	baseline, err := e.BuildSchedule(loan, nil)
	if err != nil {
		return Savings{}, err
	}
	base := Summarize(loan, baseline)
	actual := Summarize(loan, schedule)
	return Savings{
		BaselineInterest:   base.TotalInterest,
		ActualInterest:     actual.TotalInterest,
		InterestSaved:      base.TotalInterest.Sub(actual.TotalInterest),
		BaselinePayments:   base.NumberOfPayments,
		PaymentsSaved:      base.NumberOfPayments - actual.NumberOfPayments,
		BaselinePayoffDate: base.PayoffDate,
	}, nil
}
