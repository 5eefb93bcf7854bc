package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a one-time cost on an exact date. Expenses do not recur.
//
// RelatedBillID optionally links the expense as a payment toward a payoff
// bill (e.g. an extra credit card payment): when set, the expense amount is
// credited against that bill's payoff total during projection.
type Expense struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Date          Date            `json:"date"`
	Category      string          `json:"category,omitempty"`
	RelatedBillID *uuid.UUID      `json:"relatedBillId,omitempty"`
}

// Validate ensures the expense adheres to domain rules
func (e *Expense) Validate() error {
	if e.Name == "" {
		return errors.New("expense name cannot be empty")
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("expense amount must be positive")
	}
	if e.Date.IsZero() {
		return errors.New("expense date is required")
	}
	return nil
}
