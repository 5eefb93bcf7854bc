package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillPriority is a user-declared extra monthly payment directed at
// accelerating a payoff bill. The amount actually applied in a pay period is
// min(MonthlyExtraPayment, remaining payoff balance) and never negative; a
// priority referencing a missing or non-payoff bill is silently skipped.
type BillPriority struct {
	BillID              uuid.UUID       `json:"billId"`
	MonthlyExtraPayment decimal.Decimal `json:"monthlyExtraPayment"`
}
