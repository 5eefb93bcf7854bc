package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringBill is a monthly obligation due on a fixed day of the month.
// Months with fewer days than DueDay simply have no occurrence; due days are
// never clamped to month end.
//
// A bill with Total set is a payoff bill: AmountPaid accumulates toward Total
// as occurrences pass, and once AmountPaid reaches Total the bill stops
// occurring.
type RecurringBill struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Amount     decimal.Decimal  `json:"amount"`
	DueDay     int              `json:"dueDay"`
	Category   string           `json:"category,omitempty"`
	Color      string           `json:"color,omitempty"`
	Total      *decimal.Decimal `json:"total,omitempty"`
	AmountPaid decimal.Decimal  `json:"amountPaid"`
}

// HasPayoff reports whether this bill tracks a payoff total.
func (b *RecurringBill) HasPayoff() bool {
	return b.Total != nil
}

// PaidOff reports whether a payoff bill has been fully paid.
// Bills without a payoff total are never paid off.
func (b *RecurringBill) PaidOff() bool {
	return b.Total != nil && b.AmountPaid.GreaterThanOrEqual(*b.Total)
}

// Remaining returns the outstanding payoff balance, floored at zero.
// AmountPaid may overshoot Total by up to one occurrence amount, so the raw
// difference can be negative.
func (b *RecurringBill) Remaining() decimal.Decimal {
	if b.Total == nil {
		return decimal.Zero
	}
	remaining := b.Total.Sub(b.AmountPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Validate ensures the bill adheres to domain rules
func (b *RecurringBill) Validate() error {
	if b.Name == "" {
		return errors.New("bill name cannot be empty")
	}
	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("bill amount must be positive")
	}
	if b.DueDay < 1 || b.DueDay > 31 {
		return errors.New("bill due day must be between 1 and 31")
	}
	if b.Total != nil {
		if b.Total.LessThanOrEqual(decimal.Zero) {
			return errors.New("bill payoff total must be positive")
		}
		if b.AmountPaid.IsNegative() {
			return errors.New("bill amount paid cannot be negative")
		}
	}
	return nil
}
