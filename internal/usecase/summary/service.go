// Package summary assembles the finance-data snapshot the client renders
// from, and the per-month income/bills/expenses rollups.
package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kpalmer/balancecal-backend/internal/domain"
	"github.com/kpalmer/balancecal-backend/internal/usecase/schedule"
)

// FinanceData is the complete snapshot of a user's financial state: the
// account baseline plus every event collection, ordered the way the views
// consume them.
type FinanceData struct {
	Account    domain.Account          `json:"account"`
	Bills      []*domain.RecurringBill `json:"recurringBills"`
	Paychecks  []*domain.Paycheck      `json:"paychecks"`
	Expenses   []*domain.Expense       `json:"expenses"`
	Categories []*domain.Category      `json:"categories"`
}

// MonthSummary totals one calendar month of scheduled activity.
type MonthSummary struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Bills    decimal.Decimal `json:"bills"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// Service loads finance snapshots and computes monthly summaries.
type Service struct {
	AccountRepo  domain.AccountRepository
	BillRepo     domain.BillRepository
	PaycheckRepo domain.PaycheckRepository
	ExpenseRepo  domain.ExpenseRepository
	CategoryRepo domain.CategoryRepository
}

// NewService creates a new summary Service instance
func NewService(
	accountRepo domain.AccountRepository,
	billRepo domain.BillRepository,
	paycheckRepo domain.PaycheckRepository,
	expenseRepo domain.ExpenseRepository,
	categoryRepo domain.CategoryRepository,
) *Service {
	return &Service{
		AccountRepo:  accountRepo,
		BillRepo:     billRepo,
		PaycheckRepo: paycheckRepo,
		ExpenseRepo:  expenseRepo,
		CategoryRepo: categoryRepo,
	}
}

// GetFinanceData loads the full snapshot. Returns domain.ErrNotFound when no
// account has been set up yet; the caller decides the user-visible behavior
// (the web client redirects to the setup flow).
func (s *Service) GetFinanceData(ctx context.Context) (*FinanceData, error) {
	account, err := s.AccountRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("finance account: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	bills, err := s.BillRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	paychecks, err := s.PaycheckRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list paychecks: %w", err)
	}
	expenses, err := s.ExpenseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	categories, err := s.CategoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &FinanceData{
		Account:    *account,
		Bills:      bills,
		Paychecks:  paychecks,
		Expenses:   expenses,
		Categories: categories,
	}, nil
}

// MonthlySummary computes income, bill cost and expense cost for each of the
// months starting at start's month.
//
// Logic:
//   - Income: paycheck occurrences (recurrence-expanded) within the month
//   - Bills: read-only day scan of the month against the current payoff
//     snapshot; no amortization is carried between months here
//   - Expenses: expenses dated within the month
func (s *Service) MonthlySummary(ctx context.Context, start domain.Date, months int) ([]MonthSummary, error) {
	if months <= 0 {
		return nil, errors.New("months count must be positive")
	}

	bills, err := s.BillRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	paychecks, err := s.PaycheckRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list paychecks: %w", err)
	}
	expenses, err := s.ExpenseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	paid := schedule.PayoffSnapshot(bills)

	summaries := make([]MonthSummary, 0, months)
	for i := 0; i < months; i++ {
		monthStart := start.FirstOfMonth().AddMonths(i)
		monthEnd := monthStart.LastOfMonth()

		income := decimal.Zero
		for _, pc := range paychecks {
			for _, day := range schedule.PaycheckOccurrences(pc, monthEnd) {
				if !day.Before(monthStart) {
					income = income.Add(pc.Amount)
				}
			}
		}

		billTotal := decimal.Zero
		for d := monthStart; !d.After(monthEnd); d = d.AddDays(1) {
			for _, bill := range bills {
				if schedule.BillDueOn(bill, d, paid) {
					billTotal = billTotal.Add(bill.Amount)
				}
			}
		}

		expenseTotal := decimal.Zero
		for _, exp := range schedule.ExpensesInRange(expenses, monthStart, monthEnd) {
			expenseTotal = expenseTotal.Add(exp.Amount)
		}

		summaries = append(summaries, MonthSummary{
			Month:    monthStart.MonthLabel(),
			Income:   income,
			Bills:    billTotal,
			Expenses: expenseTotal,
			Net:      income.Sub(billTotal).Sub(expenseTotal),
		})
	}

	return summaries, nil
}
