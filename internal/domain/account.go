package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Account is the single baseline balance snapshot every projection starts
// from. StartingBalance is the balance known accurate on BalanceAsOfDate;
// events dated before that are historical and already reflected in it.
type Account struct {
	StartingBalance decimal.Decimal `json:"startingBalance"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	BalanceAsOfDate Date            `json:"balanceAsOfDate"`
}

// Validate ensures the account adheres to domain rules
func (a *Account) Validate() error {
	if a.BalanceAsOfDate.IsZero() {
		return errors.New("account balance-as-of date is required")
	}
	return nil
}
