package amortization

import (
	"fmt"

	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Engine generates schedules and logs the adjustments it makes along the way.
// An Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

var defaultEngine = NewEngine(nil)

// BuildSchedule generates the full schedule for a loan with the given extra
// payments using a silent engine.
func BuildSchedule(loan LoanInput, extraPayments []ExtraPayment) ([]PaymentEntry, error) {
	return defaultEngine.BuildSchedule(loan, extraPayments)
}

// RecalculateFromEdit generates the schedule with the payment at
// editedPaymentNumber overridden, using a silent engine.
func RecalculateFromEdit(loan LoanInput, extraPayments []ExtraPayment, editedPaymentNumber int, newAmount decimal.Decimal) ([]PaymentEntry, error) {
	return defaultEngine.RecalculateFromEdit(loan, extraPayments, editedPaymentNumber, newAmount)
}

// paymentEdit overrides the base payment of a single period.
type paymentEdit struct {
	paymentNumber int
	amount        decimal.Decimal
}

// terms holds everything derived from a validated LoanInput.
type terms struct {
	loan      LoanInput
	principal decimal.Decimal
	n         int
	rate      float64
	rateDec   decimal.Decimal
	payment   decimal.Decimal
}

func deriveTerms(loan LoanInput) (terms, error) {
	if err := loan.Validate(); err != nil {
		return terms{}, err
	}
	principal := mathutil.Round(loan.Principal)
	n := numberOfPayments(loan)
	rate := periodicRate(loan)
	return terms{
		loan:      loan,
		principal: principal,
		n:         n,
		rate:      rate,
		rateDec:   decimal.NewFromFloat(rate),
		payment:   LevelPayment(principal, rate, n),
	}, nil
}

// copyExtraPayments validates the caller's extra payments and returns a private
// copy with amounts rounded to cents.
func copyExtraPayments(extraPayments []ExtraPayment) ([]ExtraPayment, error) {
	extras := make([]ExtraPayment, 0, len(extraPayments))
	for i, extra := range extraPayments {
		if extra.PaymentNumber < 1 {
			return nil, invalidInput(fmt.Sprintf("extraPayments[%d].paymentNumber", i),
				"must be at least 1, got %d", extra.PaymentNumber)
		}
		amount := mathutil.Round(extra.Amount)
		if !amount.IsPositive() {
			return nil, invalidInput(fmt.Sprintf("extraPayments[%d].amount", i),
				"must be greater than zero, got %s", extra.Amount)
		}
		extras = append(extras, ExtraPayment{
			PaymentNumber: extra.PaymentNumber,
			Amount:        amount,
			Recurring:     extra.Recurring,
		})
	}
	return extras, nil
}

// ExtraPrincipal returns the total extra payment that applies at a period:
// one-time payments at their own number and recurring payments from their
// number onward.
func ExtraPrincipal(extraPayments []ExtraPayment, paymentNumber int) decimal.Decimal {
	amount := decimal.Zero
	for _, extra := range extraPayments {
		if extra.PaymentNumber == paymentNumber || (extra.Recurring && paymentNumber > extra.PaymentNumber) {
			amount = amount.Add(extra.Amount)
		}
	}
	return amount
}

// BuildSchedule generates the full schedule for a loan with the given extra
// payments. The schedule ends early when extra payments retire the balance
// before the nominal term.
func (e *Engine) BuildSchedule(loan LoanInput, extraPayments []ExtraPayment) ([]PaymentEntry, error) {
	t, err := deriveTerms(loan)
	if err != nil {
		return nil, err
	}
	extras, err := copyExtraPayments(extraPayments)
	if err != nil {
		return nil, err
	}
	return e.generate(t, extras, nil, "amortization.BuildSchedule"), nil
}

// RecalculateFromEdit generates the full schedule with the base payment at
// editedPaymentNumber replaced by newAmount. Interest is still charged on the
// actual balance. When newAmount does not cover the interest due, no principal
// is repaid and the unpaid interest is forgiven rather than capitalized. Every
// later period is recomputed from the resulting balance with the original level
// payment, and the final period absorbs whatever balance is left.
func (e *Engine) RecalculateFromEdit(loan LoanInput, extraPayments []ExtraPayment, editedPaymentNumber int, newAmount decimal.Decimal) ([]PaymentEntry, error) {
	t, err := deriveTerms(loan)
	if err != nil {
		return nil, err
	}
	extras, err := copyExtraPayments(extraPayments)
	if err != nil {
		return nil, err
	}
	if editedPaymentNumber < 1 || editedPaymentNumber > t.n {
		return nil, invalidInput("editedPaymentNumber", "must be between 1 and %d, got %d", t.n, editedPaymentNumber)
	}
	amount := mathutil.Round(newAmount)
	if amount.IsNegative() {
		return nil, invalidInput("newAmount", "must not be negative, got %s", newAmount)
	}
	edit := &paymentEdit{paymentNumber: editedPaymentNumber, amount: amount}
	return e.generate(t, extras, edit, "amortization.RecalculateFromEdit"), nil
}

func (e *Engine) generate(t terms, extras []ExtraPayment, edit *paymentEdit, op string) []PaymentEntry {
	schedule := make([]PaymentEntry, 0, t.n)
	balance := t.principal

	for number := 1; number <= t.n && balance.IsPositive(); number++ {
		interestDue := mathutil.Round(balance.Mul(t.rateDec))

		base := t.payment
		if edit != nil && edit.paymentNumber == number {
			base = edit.amount
		}

		var principal, interest decimal.Decimal
		switch {
		case number == t.n:
			// Sweep the residual so the schedule terminates at exactly zero.
			principal = balance
			interest = interestDue
			if !base.Equal(principal.Add(interest)) {
				e.logger.Debug(fmt.Sprintf("payment %d: final payment adjusted from %s to %s",
					number, base.StringFixed(2), principal.Add(interest).StringFixed(2)),
					zap.String("op", op),
				)
			}
		case base.LessThan(interestDue):
			principal = decimal.Zero
			interest = base
			e.logger.Debug(fmt.Sprintf("payment %d: amount %s below interest due %s, %s interest forgiven",
				number, base.StringFixed(2), interestDue.StringFixed(2), interestDue.Sub(base).StringFixed(2)),
				zap.String("op", op),
			)
		default:
			interest = interestDue
			principal = mathutil.Min(base.Sub(interestDue), balance)
		}

		extra := ExtraPrincipal(extras, number)
		if extra.IsPositive() {
			remaining := balance.Sub(principal)
			if extra.GreaterThan(remaining) {
				e.logger.Debug("Capping extra principal payment to prevent overpayment",
					zap.String("op", op),
					zap.Int("payment", number),
					zap.String("requested", extra.StringFixed(2)),
					zap.String("capped_to_balance", remaining.StringFixed(2)),
				)
				extra = remaining
			} else {
				e.logger.Debug(fmt.Sprintf("payment %d: applying extra principal payment %s",
					number, extra.StringFixed(2)),
					zap.String("op", op),
				)
			}
			principal = principal.Add(extra)
		}

		balance = balance.Sub(principal)
		schedule = append(schedule, PaymentEntry{
			PaymentNumber:    number,
			Date:             PaymentDate(t.loan.StartDate, t.loan.PaymentFrequency, number),
			PaymentAmount:    principal.Add(interest),
			PrincipalAmount:  principal,
			InterestAmount:   interest,
			RemainingBalance: balance,
		})
	}

	if len(schedule) < t.n {
		e.logger.Debug(fmt.Sprintf("loan paid off after %d of %d payments", len(schedule), t.n),
			zap.String("op", op),
		)
	}
	return schedule
}
