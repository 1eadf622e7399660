// Package store persists saved loan plans. A plan is stored verbatim as the
// loan, extra payments and generated schedule the user saw; nothing in the
// stored form is interpreted on load.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-amortizer/pkg/amortization"
	"github.com/shopspring/decimal"
)

// ErrPlanNotFound is returned when no plan exists for an ID.
var ErrPlanNotFound = errors.New("plan not found")

// Plan is a saved loan together with the schedule generated for it. Loan,
// ExtraPayments and Edit are exactly the inputs that produced Schedule.
type Plan struct {
	ID            string                      `json:"id"`
	Loan          amortization.LoanInput      `json:"loan"`
	ExtraPayments []amortization.ExtraPayment `json:"extraPayments"`
	Edit          *PlanEdit                   `json:"edit,omitempty"`
	Schedule      []amortization.PaymentEntry `json:"schedule"`
	CreatedAt     time.Time                   `json:"createdAt"`
}

// PlanEdit is a single payment amount override applied to a plan.
type PlanEdit struct {
	PaymentNumber int             `json:"paymentNumber"`
	Amount        decimal.Decimal `json:"amount"`
}

// PlanStore saves and loads plans.
type PlanStore interface {
	Save(ctx context.Context, plan Plan) (string, error)
	Load(ctx context.Context, id string) (Plan, error)
	Delete(ctx context.Context, id string) error
}

// prepare assigns an ID and creation time when missing and encodes the plan.
func prepare(plan Plan, now func() time.Time) (Plan, []byte, error) {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now().UTC()
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return Plan{}, nil, fmt.Errorf("failed to encode plan %s: %w", plan.ID, err)
	}
	return plan, data, nil
}

func decode(id string, data []byte) (Plan, error) {
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("failed to decode plan %s: %w", id, err)
	}
	return plan, nil
}

// ValidID reports whether id has the form of a generated plan ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
