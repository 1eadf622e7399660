// Package output provides utilities for formatting and exporting amortization
// schedules.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/iwvelando/loan-amortizer/pkg/amortization"
	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/datetime"
	"github.com/iwvelando/loan-amortizer/pkg/format"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ScheduleCSVHeader is the fixed column order of a schedule export.
var ScheduleCSVHeader = []string{"Payment #", "Date", "Payment Amount", "Principal", "Interest", "Remaining Balance"}

// YearlyCSVHeader is the column order of a yearly export.
var YearlyCSVHeader = []string{"Year", "Payments", "Total Paid", "Principal", "Interest", "Starting Balance", "Ending Balance"}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(schedule []amortization.PaymentEntry, summary amortization.PaymentSummary) {
	WritePretty(os.Stdout, schedule, summary)
}

// PrettyYearlyFormat outputs the yearly view as a human-readable table.
func PrettyYearlyFormat(years []amortization.YearlySummaryEntry, summary amortization.PaymentSummary) {
	WritePrettyYearly(os.Stdout, years, summary)
}

// CsvFormat outputs the schedule in comma-separated value format.
func CsvFormat(schedule []amortization.PaymentEntry) error {
	return WriteCSV(os.Stdout, schedule)
}

// CsvYearlyFormat outputs the yearly view in comma-separated value format.
func CsvYearlyFormat(years []amortization.YearlySummaryEntry) error {
	return WriteYearlyCSV(os.Stdout, years)
}

// WritePretty writes the schedule table followed by the summary.
func WritePretty(w io.Writer, schedule []amortization.PaymentEntry, summary amortization.PaymentSummary) {
	_, _ = fmt.Fprintf(w, "--- Amortization schedule ---\n")
	_, _ = fmt.Fprintf(w, "Payment # | Date       | Payment | Principal | Interest | Remaining Balance\n")
	_, _ = fmt.Fprintf(w, "_________ | __________ | _______ | _________ | ________ | _________________\n")
	for _, entry := range schedule {
		_, _ = fmt.Fprintf(w, "%9d | %s | %s | %s | %s | %s\n",
			entry.PaymentNumber,
			datetime.Format(entry.Date),
			format.NumericCurrency(entry.PaymentAmount),
			format.NumericCurrency(entry.PrincipalAmount),
			format.NumericCurrency(entry.InterestAmount),
			format.NumericCurrency(entry.RemainingBalance),
		)
	}
	writeSummary(w, summary)
}

// WritePrettyYearly writes the yearly table followed by the summary.
func WritePrettyYearly(w io.Writer, years []amortization.YearlySummaryEntry, summary amortization.PaymentSummary) {
	_, _ = fmt.Fprintf(w, "--- Yearly amortization ---\n")
	_, _ = fmt.Fprintf(w, "Year | Payments | Total Paid | Principal | Interest | Starting Balance | Ending Balance\n")
	_, _ = fmt.Fprintf(w, "____ | ________ | __________ | _________ | ________ | ________________ | ______________\n")
	for _, year := range years {
		_, _ = fmt.Fprintf(w, "%d | %8d | %s | %s | %s | %s | %s\n",
			year.Year,
			year.PaymentCount,
			format.NumericCurrency(year.TotalPayments),
			format.NumericCurrency(year.TotalPrincipal),
			format.NumericCurrency(year.TotalInterest),
			format.NumericCurrency(year.StartingBalance),
			format.NumericCurrency(year.EndingBalance),
		)
	}
	writeSummary(w, summary)
}

func writeSummary(w io.Writer, summary amortization.PaymentSummary) {
	// Payment counts run into the thousands on weekly loans and are grouped.
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "\n--- Summary ---\n")
	_, _ = fmt.Fprintf(w, "Scheduled payment: %s\n", format.Currency(summary.ScheduledPayment))
	_, _ = fmt.Fprintf(w, "Total principal:   %s\n", format.Currency(summary.TotalPrincipal))
	_, _ = fmt.Fprintf(w, "Total interest:    %s\n", format.Currency(summary.TotalInterest))
	_, _ = fmt.Fprintf(w, "Total paid:        %s\n", format.Currency(summary.TotalPaid))
	_, _ = p.Fprintf(w, "Payments made:     %d of %d\n", summary.NumberOfPayments, summary.NominalPayments)
	if !summary.PayoffDate.IsZero() {
		_, _ = fmt.Fprintf(w, "Payoff date:       %s\n", datetime.Format(summary.PayoffDate))
	}
}

// WriteCSV writes the schedule with the fixed export column order.
func WriteCSV(w io.Writer, schedule []amortization.PaymentEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ScheduleCSVHeader); err != nil {
		return err
	}
	for _, entry := range schedule {
		record := []string{
			strconv.Itoa(entry.PaymentNumber),
			datetime.Format(entry.Date),
			money(entry.PaymentAmount),
			money(entry.PrincipalAmount),
			money(entry.InterestAmount),
			money(entry.RemainingBalance),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteYearlyCSV writes the yearly view in CSV.
func WriteYearlyCSV(w io.Writer, years []amortization.YearlySummaryEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(YearlyCSVHeader); err != nil {
		return err
	}
	for _, year := range years {
		record := []string{
			strconv.Itoa(year.Year),
			strconv.Itoa(year.PaymentCount),
			money(year.TotalPayments),
			money(year.TotalPrincipal),
			money(year.TotalInterest),
			money(year.StartingBalance),
			money(year.EndingBalance),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func money(amount decimal.Decimal) string {
	return amount.StringFixedBank(constants.CurrencyPlaces)
}
