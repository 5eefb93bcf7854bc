// Package projector computes forward-looking balance calendars: given an
// account baseline and the event collections, it walks a date range one day
// at a time and folds every event into a running balance.
package projector

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpalmer/balancecal-backend/internal/domain"
	"github.com/kpalmer/balancecal-backend/internal/usecase/schedule"
)

// Input is the snapshot a projection runs over. The projector never mutates
// the supplied entities; payoff progress accumulates in a private map and is
// returned as part of the Projection.
type Input struct {
	Account   domain.Account
	Bills     []*domain.RecurringBill
	Paychecks []*domain.Paycheck
	Expenses  []*domain.Expense

	// RangeStart and RangeEnd bound the walk, inclusive on both ends.
	// RangeStart may precede the account's balance-as-of date; such days are
	// emitted for grid padding but carry no events and no balance.
	RangeStart domain.Date
	RangeEnd   domain.Date

	// FocusMonth marks which days belong to the month a calendar grid is
	// centered on. Zero value means every day is marked current.
	FocusMonth domain.Date
}

// BillOccurrence is a bill landing on a specific calendar day. AmountPaid is
// the cumulative payoff progress through this occurrence.
type BillOccurrence struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Amount     decimal.Decimal  `json:"amount"`
	DueDay     int              `json:"dueDay"`
	Category   string           `json:"category,omitempty"`
	Color      string           `json:"color,omitempty"`
	Total      *decimal.Decimal `json:"total,omitempty"`
	AmountPaid decimal.Decimal  `json:"amountPaid"`
}

// CalendarDay is one projected day: the events landing on it and the account
// balance after applying them. Days are ephemeral and recomputed per request.
type CalendarDay struct {
	Date           domain.Date       `json:"date"`
	IsCurrentMonth bool              `json:"isCurrentMonth"`
	BeforeBaseline bool              `json:"beforeBaseline,omitempty"`
	Bills          []BillOccurrence  `json:"bills"`
	Paychecks      []domain.Paycheck `json:"paychecks"`
	Expenses       []domain.Expense  `json:"expenses"`
	RunningBalance decimal.Decimal   `json:"runningBalance"`
}

// Projection is the result of a calendar walk. PayoffState maps every payoff
// bill to its amount paid after the walk; callers that want the amortization
// persisted write it back through the bill repository explicitly.
type Projection struct {
	Days        []CalendarDay
	PayoffState map[uuid.UUID]decimal.Decimal
}

// ProjectCalendar walks from RangeStart through RangeEnd, one day at a time,
// and produces the annotated day sequence with running balances.
//
// Logic:
//  1. Expand every paycheck's recurrence through RangeEnd and index by day
//  2. Seed the payoff map from the bills' current AmountPaid
//  3. For each day at or after the balance-as-of date: match bills (due day,
//     not yet paid off), paychecks (expanded occurrence) and expenses (exact
//     date); add paycheck amounts, subtract bill and expense amounts
//  4. Each payoff bill occurrence accrues its amount into the payoff map,
//     which feeds back into later matching within the same walk; an expense
//     linked to a payoff bill credits that bill's payoff too
//
// Days strictly before the balance-as-of date carry no events and a zero
// balance, flagged BeforeBaseline.
func ProjectCalendar(input Input) (*Projection, error) {
	if input.RangeStart.IsZero() || input.RangeEnd.IsZero() {
		return nil, errors.New("projection range is required")
	}
	if input.RangeEnd.Before(input.RangeStart) {
		return nil, errors.New("projection range end must not precede range start")
	}

	paydays := schedule.PaycheckOccurrenceIndex(input.Paychecks, input.RangeEnd)
	paid := schedule.PayoffSnapshot(input.Bills)

	balance := input.Account.StartingBalance
	var days []CalendarDay

	for d := input.RangeStart; !d.After(input.RangeEnd); d = d.AddDays(1) {
		if d.Before(input.Account.BalanceAsOfDate) {
			days = append(days, CalendarDay{
				Date:           d,
				IsCurrentMonth: inFocusMonth(d, input.FocusMonth),
				BeforeBaseline: true,
				Bills:          []BillOccurrence{},
				Paychecks:      []domain.Paycheck{},
				Expenses:       []domain.Expense{},
				RunningBalance: decimal.Zero,
			})
			continue
		}

		var dayBills []*domain.RecurringBill
		for _, bill := range input.Bills {
			if schedule.BillDueOn(bill, d, paid) {
				dayBills = append(dayBills, bill)
			}
		}
		dayPaychecks := paydays[d]
		dayExpenses := schedule.ExpensesOn(input.Expenses, d)

		for _, pc := range dayPaychecks {
			balance = balance.Add(pc.Amount)
		}
		for _, bill := range dayBills {
			balance = balance.Sub(bill.Amount)
			if bill.Total != nil {
				paid[bill.ID] = paid[bill.ID].Add(bill.Amount)
			}
		}
		for _, exp := range dayExpenses {
			balance = balance.Sub(exp.Amount)
			// An expense that pays toward a payoff bill advances that
			// bill's amortization as well.
			if exp.RelatedBillID != nil {
				if _, tracked := paid[*exp.RelatedBillID]; tracked {
					paid[*exp.RelatedBillID] = paid[*exp.RelatedBillID].Add(exp.Amount)
				}
			}
		}

		days = append(days, CalendarDay{
			Date:           d,
			IsCurrentMonth: inFocusMonth(d, input.FocusMonth),
			Bills:          billOccurrences(dayBills, paid),
			Paychecks:      copyPaychecks(dayPaychecks),
			Expenses:       copyExpenses(dayExpenses),
			RunningBalance: balance,
		})
	}

	return &Projection{Days: days, PayoffState: paid}, nil
}

func inFocusMonth(d, focus domain.Date) bool {
	if focus.IsZero() {
		return true
	}
	return d.Year == focus.Year && d.Month == focus.Month
}

func billOccurrences(bills []*domain.RecurringBill, paid map[uuid.UUID]decimal.Decimal) []BillOccurrence {
	occurrences := make([]BillOccurrence, 0, len(bills))
	for _, bill := range bills {
		occ := BillOccurrence{
			ID:       bill.ID,
			Name:     bill.Name,
			Amount:   bill.Amount,
			DueDay:   bill.DueDay,
			Category: bill.Category,
			Color:    bill.Color,
			Total:    bill.Total,
		}
		if bill.Total != nil {
			occ.AmountPaid = paid[bill.ID]
		}
		occurrences = append(occurrences, occ)
	}
	return occurrences
}

func copyPaychecks(paychecks []*domain.Paycheck) []domain.Paycheck {
	out := make([]domain.Paycheck, 0, len(paychecks))
	for _, pc := range paychecks {
		out = append(out, *pc)
	}
	return out
}

func copyExpenses(expenses []*domain.Expense) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, exp := range expenses {
		out = append(out, *exp)
	}
	return out
}

// MonthGridRange returns the 42-day range a month-view calendar grid covers:
// six full weeks starting on the Sunday at or before the first of the month.
func MonthGridRange(year int, month time.Month) (domain.Date, domain.Date) {
	first := domain.NewDate(year, month, 1)
	start := first.AddDays(-int(first.Weekday()))
	return start, start.AddDays(41)
}

// MonthlyBalance is a per-month rollup of the balance trajectory.
type MonthlyBalance struct {
	Month      string          `json:"month"`
	MinBalance decimal.Decimal `json:"minBalance"`
	MaxBalance decimal.Decimal `json:"maxBalance"`
	EndBalance decimal.Decimal `json:"endBalance"`
}

// MonthlyBalances groups projected days by calendar month and reports the
// minimum, maximum and final running balance of each month, in date order.
func MonthlyBalances(days []CalendarDay) []MonthlyBalance {
	var out []MonthlyBalance
	var current *MonthlyBalance
	currentKey := ""

	for _, day := range days {
		key := day.Date.MonthKey()
		if key != currentKey {
			out = append(out, MonthlyBalance{
				Month:      key,
				MinBalance: day.RunningBalance,
				MaxBalance: day.RunningBalance,
				EndBalance: day.RunningBalance,
			})
			current = &out[len(out)-1]
			currentKey = key
			continue
		}
		if day.RunningBalance.LessThan(current.MinBalance) {
			current.MinBalance = day.RunningBalance
		}
		if day.RunningBalance.GreaterThan(current.MaxBalance) {
			current.MaxBalance = day.RunningBalance
		}
		current.EndBalance = day.RunningBalance
	}

	return out
}

// MonthlySummary aggregates one calendar month of projected activity.
type MonthlySummary struct {
	Month      string          `json:"month"`
	Income     decimal.Decimal `json:"income"`
	Bills      decimal.Decimal `json:"bills"`
	Expenses   decimal.Decimal `json:"expenses"`
	Net        decimal.Decimal `json:"net"`
	EndBalance decimal.Decimal `json:"endBalance"`
}

// MonthlySummaries totals income, bill cost and expense cost per calendar
// month of the projection, in date order.
func MonthlySummaries(days []CalendarDay) []MonthlySummary {
	var out []MonthlySummary
	var current *MonthlySummary
	currentKey := ""

	for _, day := range days {
		key := day.Date.MonthKey()
		if key != currentKey {
			out = append(out, MonthlySummary{
				Month:    day.Date.MonthLabel(),
				Income:   decimal.Zero,
				Bills:    decimal.Zero,
				Expenses: decimal.Zero,
			})
			current = &out[len(out)-1]
			currentKey = key
		}
		for _, pc := range day.Paychecks {
			current.Income = current.Income.Add(pc.Amount)
		}
		for _, bill := range day.Bills {
			current.Bills = current.Bills.Add(bill.Amount)
		}
		for _, exp := range day.Expenses {
			current.Expenses = current.Expenses.Add(exp.Amount)
		}
		current.EndBalance = day.RunningBalance
	}

	for i := range out {
		out[i].Net = out[i].Income.Sub(out[i].Bills).Sub(out[i].Expenses)
	}

	return out
}
