// Package schedule holds the event-matching and recurrence-expansion
// primitives shared by the calendar projector and the pay-period allocator.
// Everything here is a pure function over snapshot data.
package schedule

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

// maxOccurrences bounds recurrence expansion against degenerate rules.
// The longest practical horizon (~2 years of weekly paychecks) needs ~105.
const maxOccurrences = 1000

// bimonthlyMidpoint is the day-of-month the bimonthly stepping rule branches
// on. The configured SecondDayOfMonth supplies the generated mid-month day,
// but the branch itself always tests against day 15.
const bimonthlyMidpoint = 15

// BillDueOn reports whether a bill has an occurrence on the given day.
// A bill matches when its due day equals the day of month and, for payoff
// bills, the supplied paid snapshot has not yet reached the total. Months
// shorter than the due day simply produce no match; due days are never
// clamped to month end.
func BillDueOn(bill *domain.RecurringBill, day domain.Date, paid map[uuid.UUID]decimal.Decimal) bool {
	if bill.DueDay != day.Day {
		return false
	}
	if bill.Total == nil {
		return true
	}
	return paid[bill.ID].LessThan(*bill.Total)
}

// PayoffSnapshot builds the amount-paid map the matching functions read,
// seeded from the current AmountPaid of every payoff bill.
func PayoffSnapshot(bills []*domain.RecurringBill) map[uuid.UUID]decimal.Decimal {
	paid := make(map[uuid.UUID]decimal.Decimal)
	for _, bill := range bills {
		if bill.Total != nil {
			paid[bill.ID] = bill.AmountPaid
		}
	}
	return paid
}

// PaycheckOccurrences expands a paycheck's recurrence rule forward from its
// anchor date through the until date (inclusive).
//
// Stepping rules:
//   - weekly: +7 days
//   - biweekly: +14 days
//   - monthly: +1 calendar month (overflowing days normalize forward)
//   - bimonthly: before the month's midpoint, jump to the mid-month payday
//     (SecondDayOfMonth when configured, day 15 otherwise); at or past the
//     midpoint, jump to the first of the next month
//   - custom: the anchor date only
func PaycheckOccurrences(pc *domain.Paycheck, until domain.Date) []domain.Date {
	if pc.Date.After(until) {
		return nil
	}

	occurrences := []domain.Date{pc.Date}
	if pc.Frequency == domain.FrequencyCustom {
		return occurrences
	}

	current := pc.Date
	for len(occurrences) < maxOccurrences {
		next, ok := nextOccurrence(pc, current)
		if !ok || next.After(until) {
			break
		}
		occurrences = append(occurrences, next)
		current = next
	}

	return occurrences
}

func nextOccurrence(pc *domain.Paycheck, current domain.Date) (domain.Date, bool) {
	switch pc.Frequency {
	case domain.FrequencyWeekly:
		return current.AddDays(7), true
	case domain.FrequencyBiweekly:
		return current.AddDays(14), true
	case domain.FrequencyMonthly:
		return current.AddMonths(1), true
	case domain.FrequencyBimonthly:
		return nextBimonthly(pc, current), true
	default:
		return domain.Date{}, false
	}
}

// nextBimonthly alternates between the mid-month payday and the first of the
// next month. A configured second day earlier than the current day would
// repeat the same date forever, so any non-advancing jump falls through to
// the first of the next month.
func nextBimonthly(pc *domain.Paycheck, current domain.Date) domain.Date {
	if current.Day < bimonthlyMidpoint {
		secondDay := pc.SecondDayOfMonth
		if secondDay == 0 {
			secondDay = bimonthlyMidpoint
		}
		mid := domain.NewDate(current.Year, current.Month, secondDay)
		if mid.After(current) {
			return mid
		}
	}
	return current.FirstOfMonth().AddMonths(1)
}

// PaycheckOccurrenceIndex expands every paycheck through the until date and
// groups the occurrences by day, preserving the input order of same-day
// paychecks.
func PaycheckOccurrenceIndex(paychecks []*domain.Paycheck, until domain.Date) map[domain.Date][]*domain.Paycheck {
	index := make(map[domain.Date][]*domain.Paycheck)
	for _, pc := range paychecks {
		for _, day := range PaycheckOccurrences(pc, until) {
			index[day] = append(index[day], pc)
		}
	}
	return index
}

// ExpensesOn returns the expenses dated exactly on the given day.
func ExpensesOn(expenses []*domain.Expense, day domain.Date) []*domain.Expense {
	var matched []*domain.Expense
	for _, exp := range expenses {
		if exp.Date.Equal(day) {
			matched = append(matched, exp)
		}
	}
	return matched
}

// ExpensesInRange returns the expenses dated within [start, end] inclusive.
func ExpensesInRange(expenses []*domain.Expense, start, end domain.Date) []*domain.Expense {
	var matched []*domain.Expense
	for _, exp := range expenses {
		if !exp.Date.Before(start) && !exp.Date.After(end) {
			matched = append(matched, exp)
		}
	}
	return matched
}
