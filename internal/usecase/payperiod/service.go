// Package payperiod partitions the near-term future into paycheck-bounded
// windows and computes the budget breakdown of each: income, essential bill
// cost, one-time expenses, priority extra payments, and what is left over.
package payperiod

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpalmer/balancecal-backend/internal/domain"
	"github.com/kpalmer/balancecal-backend/internal/usecase/schedule"
)

// DefaultHorizonMonths bounds how far ahead pay periods are computed.
const DefaultHorizonMonths = 3

// lastPeriodDays is the synthetic width of the period after the final
// paycheck, which has no successor to delimit it.
const lastPeriodDays = 14

// Input is the snapshot pay periods are computed from. Today is the
// wall-clock date the horizon starts at; it is explicit so callers control
// the clock.
type Input struct {
	Bills         []*domain.RecurringBill
	Paychecks     []*domain.Paycheck
	Expenses      []*domain.Expense
	Priorities    []domain.BillPriority
	Today         domain.Date
	HorizonMonths int // defaults to DefaultHorizonMonths when zero
}

// PriorityPayment is a resolved extra payment toward a payoff bill, clamped
// so it never exceeds the bill's remaining payoff balance.
type PriorityPayment struct {
	BillID uuid.UUID       `json:"billId"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// PayPeriod is one paycheck-delimited budget window.
type PayPeriod struct {
	StartDate        domain.Date            `json:"startDate"`
	EndDate          domain.Date            `json:"endDate"`
	Paycheck         domain.Paycheck        `json:"paycheck"`
	Bills            []domain.RecurringBill `json:"bills"`
	Expenses         []domain.Expense       `json:"expenses"`
	PriorityPayments []PriorityPayment      `json:"priorityPayments"`
	TotalIncome      decimal.Decimal        `json:"totalIncome"`
	TotalEssential   decimal.Decimal        `json:"totalEssential"`
	TotalExpenses    decimal.Decimal        `json:"totalExpenses"`
	TotalPriority    decimal.Decimal        `json:"totalPriority"`
	Discretionary    decimal.Decimal        `json:"discretionaryAmount"`
}

type occurrence struct {
	paycheck *domain.Paycheck
	date     domain.Date
}

// ComputePayPeriods expands upcoming paycheck occurrences within the horizon
// and builds one budget window per occurrence.
//
// Logic:
//  1. Expand every paycheck's recurrence and keep occurrences in
//     [Today, Today+Horizon], sorted by date; same-day occurrences keep
//     their input order
//  2. Period i runs from occurrence i through the day before occurrence
//     i+1; the final period runs 14 days
//  3. Bills are matched by a read-only day scan of the period (current
//     payoff snapshot, no amortization); expenses by date range
//  4. The same full set of priority payments applies to every period,
//     a deliberate simplification rather than a per-month split
//  5. Discretionary = income - essential - expenses - priority, where
//     income is the anchor paycheck's amount only; may be negative
func ComputePayPeriods(input Input) ([]PayPeriod, error) {
	horizon := input.HorizonMonths
	if horizon <= 0 {
		horizon = DefaultHorizonMonths
	}
	horizonEnd := input.Today.AddMonths(horizon)

	var upcoming []occurrence
	for _, pc := range input.Paychecks {
		for _, day := range schedule.PaycheckOccurrences(pc, horizonEnd) {
			if !day.Before(input.Today) {
				upcoming = append(upcoming, occurrence{paycheck: pc, date: day})
			}
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].date.Before(upcoming[j].date)
	})

	paid := schedule.PayoffSnapshot(input.Bills)
	priorityPayments, totalPriority := resolvePriorities(input.Priorities, input.Bills)

	periods := make([]PayPeriod, 0, len(upcoming))
	for i, occ := range upcoming {
		start := occ.date
		var end domain.Date
		if i+1 < len(upcoming) {
			end = upcoming[i+1].date.AddDays(-1)
		} else {
			end = start.AddDays(lastPeriodDays)
		}

		bills := billsInRange(input.Bills, start, end, paid)
		expenses := schedule.ExpensesInRange(input.Expenses, start, end)

		totalEssential := decimal.Zero
		for _, bill := range bills {
			totalEssential = totalEssential.Add(bill.Amount)
		}
		totalExpenses := decimal.Zero
		for _, exp := range expenses {
			totalExpenses = totalExpenses.Add(exp.Amount)
		}

		totalIncome := occ.paycheck.Amount
		discretionary := totalIncome.Sub(totalEssential).Sub(totalExpenses).Sub(totalPriority)

		anchor := *occ.paycheck
		anchor.Date = occ.date

		periods = append(periods, PayPeriod{
			StartDate:        start,
			EndDate:          end,
			Paycheck:         anchor,
			Bills:            bills,
			Expenses:         copyExpenses(expenses),
			PriorityPayments: priorityPayments,
			TotalIncome:      totalIncome,
			TotalEssential:   totalEssential,
			TotalExpenses:    totalExpenses,
			TotalPriority:    totalPriority,
			Discretionary:    discretionary,
		})
	}

	return periods, nil
}

// billsInRange scans the period one day at a time, matching bills against
// the read-only payoff snapshot. A period spanning a month boundary can
// match the same bill twice; both occurrences count.
func billsInRange(bills []*domain.RecurringBill, start, end domain.Date, paid map[uuid.UUID]decimal.Decimal) []domain.RecurringBill {
	matched := make([]domain.RecurringBill, 0)
	for d := start; !d.After(end); d = d.AddDays(1) {
		for _, bill := range bills {
			if schedule.BillDueOn(bill, d, paid) {
				matched = append(matched, *bill)
			}
		}
	}
	return matched
}

// resolvePriorities maps the declared priorities onto their bills. Entries
// referencing a missing or non-payoff bill are skipped; the applied amount
// is min(extra, remaining) and never negative.
func resolvePriorities(priorities []domain.BillPriority, bills []*domain.RecurringBill) ([]PriorityPayment, decimal.Decimal) {
	byID := make(map[uuid.UUID]*domain.RecurringBill, len(bills))
	for _, bill := range bills {
		byID[bill.ID] = bill
	}

	payments := make([]PriorityPayment, 0, len(priorities))
	total := decimal.Zero
	for _, priority := range priorities {
		bill, ok := byID[priority.BillID]
		if !ok || bill.Total == nil {
			continue
		}
		amount := decimal.Min(priority.MonthlyExtraPayment, bill.Remaining())
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		payments = append(payments, PriorityPayment{
			BillID: bill.ID,
			Name:   bill.Name,
			Amount: amount,
		})
		total = total.Add(amount)
	}

	return payments, total
}

func copyExpenses(expenses []*domain.Expense) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, exp := range expenses {
		out = append(out, *exp)
	}
	return out
}
