package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayFrequency describes how a paycheck recurs from its anchor date.
type PayFrequency string

const (
	FrequencyWeekly    PayFrequency = "weekly"
	FrequencyBiweekly  PayFrequency = "biweekly"
	FrequencyBimonthly PayFrequency = "bimonthly"
	FrequencyMonthly   PayFrequency = "monthly"
	// FrequencyCustom is a one-time paycheck: the anchor date only.
	FrequencyCustom PayFrequency = "custom"
)

// Paycheck is a scheduled income event. Date is the anchor occurrence;
// recurrence is generated forward from it by Frequency.
//
// SecondDayOfMonth applies to bimonthly paychecks only: when set, it is the
// day of month used for the mid-month payday.
type Paycheck struct {
	ID               uuid.UUID       `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	Date             Date            `json:"date"`
	Frequency        PayFrequency    `json:"frequency"`
	SecondDayOfMonth int             `json:"secondDayOfMonth,omitempty"`
	Category         string          `json:"category,omitempty"`
}

// Validate ensures the paycheck adheres to domain rules
func (p *Paycheck) Validate() error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("paycheck amount must be positive")
	}
	if p.Date.IsZero() {
		return errors.New("paycheck date is required")
	}
	switch p.Frequency {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyBimonthly, FrequencyMonthly, FrequencyCustom:
	default:
		return errors.New("paycheck frequency must be weekly, biweekly, bimonthly, monthly or custom")
	}
	if p.SecondDayOfMonth != 0 && (p.SecondDayOfMonth < 1 || p.SecondDayOfMonth > 31) {
		return errors.New("paycheck second day of month must be between 1 and 31")
	}
	return nil
}
