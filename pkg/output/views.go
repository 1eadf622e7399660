package output

import (
	"github.com/iwvelando/loan-amortizer/pkg/amortization"
	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/datetime"
	"github.com/shopspring/decimal"
)

// Page is one page of a paginated schedule table.
type Page struct {
	Entries    []amortization.PaymentEntry
	Page       int
	PageSize   int
	TotalPages int
	TotalRows  int
}

// Paginate returns the requested 1-based page of a schedule. Out-of-range
// pages are clamped to the nearest valid page and a non-positive page size
// falls back to the default.
func Paginate(schedule []amortization.PaymentEntry, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	totalPages := (len(schedule) + pageSize - 1) / pageSize
	if totalPages == 0 {
		return Page{Entries: []amortization.PaymentEntry{}, Page: 1, PageSize: pageSize}
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(schedule) {
		end = len(schedule)
	}
	entries := make([]amortization.PaymentEntry, end-start)
	copy(entries, schedule[start:end])

	return Page{
		Entries:    entries,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalRows:  len(schedule),
	}
}

// BalancePoint is one point of the chart series.
type BalancePoint struct {
	PaymentNumber       int             `json:"paymentNumber"`
	Date                string          `json:"date"`
	Balance             decimal.Decimal `json:"balance"`
	CumulativePrincipal decimal.Decimal `json:"cumulativePrincipal"`
	CumulativeInterest  decimal.Decimal `json:"cumulativeInterest"`
}

// BalanceSeries converts a schedule into running totals for charting.
func BalanceSeries(schedule []amortization.PaymentEntry) []BalancePoint {
	points := make([]BalancePoint, 0, len(schedule))
	principal := decimal.Zero
	interest := decimal.Zero
	for _, entry := range schedule {
		principal = principal.Add(entry.PrincipalAmount)
		interest = interest.Add(entry.InterestAmount)
		points = append(points, BalancePoint{
			PaymentNumber:       entry.PaymentNumber,
			Date:                datetime.Format(entry.Date),
			Balance:             entry.RemainingBalance,
			CumulativePrincipal: principal,
			CumulativeInterest:  interest,
		})
	}
	return points
}
