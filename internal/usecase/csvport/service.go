// Package csvport bulk-loads recurring bills from CSV and exports projected
// calendars as CSV: a monthly summary block followed by a daily breakdown.
package csvport

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpalmer/balancecal-backend/internal/domain"
	"github.com/kpalmer/balancecal-backend/internal/usecase/projector"
)

// Service handles CSV import and export operations
type Service struct {
	AccountRepo  domain.AccountRepository
	BillRepo     domain.BillRepository
	PaycheckRepo domain.PaycheckRepository
	ExpenseRepo  domain.ExpenseRepository
}

// NewService creates a new csvport Service instance
func NewService(
	accountRepo domain.AccountRepository,
	billRepo domain.BillRepository,
	paycheckRepo domain.PaycheckRepository,
	expenseRepo domain.ExpenseRepository,
) *Service {
	return &Service{
		AccountRepo:  accountRepo,
		BillRepo:     billRepo,
		PaycheckRepo: paycheckRepo,
		ExpenseRepo:  expenseRepo,
	}
}

// ImportBills reads a "name, dueDay, amount, remainingTotal" CSV (header row
// expected) and creates a bill per usable row. Rows with blank required
// fields, unparseable numbers or an out-of-range due day are skipped rather
// than failing the import. A positive remaining total turns the row into a
// payoff bill starting from zero paid.
//
// The due day column accepts either a bare day number or an M/D date, in
// which case the day part is used.
func (s *Service) ImportBills(ctx context.Context, r io.Reader) ([]*domain.RecurringBill, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Header row
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return []*domain.RecurringBill{}, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	imported := make([]*domain.RecurringBill, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		bill, ok := billFromRow(row)
		if !ok {
			continue
		}

		if err := s.BillRepo.Create(ctx, bill); err != nil {
			return nil, fmt.Errorf("failed to create imported bill %q: %w", bill.Name, err)
		}
		imported = append(imported, bill)
	}

	return imported, nil
}

func billFromRow(row []string) (*domain.RecurringBill, bool) {
	if len(row) < 3 {
		return nil, false
	}

	name := strings.TrimSpace(row[0])
	dueField := strings.TrimSpace(row[1])
	amountField := strings.TrimSpace(row[2])
	remainingField := ""
	if len(row) > 3 {
		remainingField = strings.TrimSpace(row[3])
	}

	if name == "" || dueField == "" || amountField == "" {
		return nil, false
	}

	dueDay, ok := parseDueDay(dueField)
	if !ok {
		return nil, false
	}

	amount, err := decimal.NewFromString(amountField)
	if err != nil {
		return nil, false
	}

	bill := &domain.RecurringBill{
		ID:       uuid.New(),
		Name:     name,
		Amount:   amount,
		DueDay:   dueDay,
		Category: "Other",
		Color:    "bg-gray-500",
	}

	if remainingField != "" {
		if remaining, err := decimal.NewFromString(remainingField); err == nil && remaining.IsPositive() {
			bill.Total = &remaining
			bill.AmountPaid = decimal.Zero
		}
	}

	if bill.Validate() != nil {
		return nil, false
	}

	return bill, true
}

// parseDueDay accepts "17" or "3/17" style values; a slash form uses the day
// component.
func parseDueDay(field string) (int, bool) {
	value := field
	if strings.Contains(field, "/") {
		parts := strings.Split(field, "/")
		if len(parts) > 1 {
			value = parts[1]
		} else {
			value = parts[0]
		}
	}

	day, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

// ExportCalendar projects the requested range and writes two CSV blocks: a
// MONTHLY SUMMARY section, a blank row, then a DAILY BREAKDOWN section with
// a per-day details column.
func (s *Service) ExportCalendar(ctx context.Context, w io.Writer, start, end domain.Date) error {
	account, err := s.AccountRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	bills, err := s.BillRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bills: %w", err)
	}
	paychecks, err := s.PaycheckRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list paychecks: %w", err)
	}
	expenses, err := s.ExpenseRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}

	projection, err := projector.ProjectCalendar(projector.Input{
		Account:    *account,
		Bills:      bills,
		Paychecks:  paychecks,
		Expenses:   expenses,
		RangeStart: start,
		RangeEnd:   end,
	})
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"MONTHLY SUMMARY"}); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	if err := writer.Write([]string{"Month", "Income", "Bills", "Expenses", "Net Change", "End Balance"}); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	for _, month := range projector.MonthlySummaries(projection.Days) {
		record := []string{
			month.Month,
			month.Income.StringFixed(2),
			month.Bills.StringFixed(2),
			month.Expenses.StringFixed(2),
			month.Net.StringFixed(2),
			month.EndBalance.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}

	if err := writer.Write([]string{}); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if err := writer.Write([]string{"DAILY BREAKDOWN"}); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	header := []string{"Date", "Day of Week", "Income", "Bills", "Expenses", "Net Change", "Balance", "Details"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	for _, day := range projection.Days {
		if err := writer.Write(dailyRecord(day)); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func dailyRecord(day projector.CalendarDay) []string {
	income := decimal.Zero
	billTotal := decimal.Zero
	expenseTotal := decimal.Zero
	var details []string

	for _, pc := range day.Paychecks {
		income = income.Add(pc.Amount)
		details = append(details, fmt.Sprintf("+$%s (Paycheck)", pc.Amount.StringFixed(2)))
	}
	for _, bill := range day.Bills {
		billTotal = billTotal.Add(bill.Amount)
		details = append(details, fmt.Sprintf("-$%s (%s)", bill.Amount.StringFixed(2), bill.Name))
	}
	for _, exp := range day.Expenses {
		expenseTotal = expenseTotal.Add(exp.Amount)
		details = append(details, fmt.Sprintf("-$%s (%s)", exp.Amount.StringFixed(2), exp.Name))
	}

	net := income.Sub(billTotal).Sub(expenseTotal)

	return []string{
		day.Date.String(),
		day.Date.Weekday().String()[:3],
		income.StringFixed(2),
		billTotal.StringFixed(2),
		expenseTotal.StringFixed(2),
		net.StringFixed(2),
		day.RunningBalance.StringFixed(2),
		strings.Join(details, "; "),
	}
}
