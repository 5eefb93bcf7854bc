package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

// billRepository implements domain.BillRepository
type billRepository struct {
	db *DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *DB) domain.BillRepository {
	return &billRepository{db: db}
}

func scanBill(scan func(dest ...interface{}) error) (*domain.RecurringBill, error) {
	var bill domain.RecurringBill
	var amountStr, paidStr string
	var totalStr sql.NullString

	err := scan(
		&bill.ID,
		&bill.Name,
		&amountStr,
		&bill.DueDay,
		&bill.Category,
		&bill.Color,
		&totalStr,
		&paidStr,
	)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	bill.Amount = amount

	paid, err := decimal.NewFromString(paidStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount_paid: %w", err)
	}
	bill.AmountPaid = paid

	if totalStr.Valid {
		total, err := decimal.NewFromString(totalStr.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse total: %w", err)
		}
		bill.Total = &total
	}

	return &bill, nil
}

// GetByID retrieves a bill by its ID
func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecurringBill, error) {
	query := `
		SELECT id, name, amount, due_day, category, color, total, amount_paid
		FROM recurring_bills
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	bill, err := scanBill(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("bill %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get bill by ID: %w", err)
	}

	return bill, nil
}

// List retrieves all bills ordered by due day
func (r *billRepository) List(ctx context.Context) ([]*domain.RecurringBill, error) {
	query := `
		SELECT id, name, amount, due_day, category, color, total, amount_paid
		FROM recurring_bills
		ORDER BY due_day, name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := make([]*domain.RecurringBill, 0)
	for rows.Next() {
		bill, err := scanBill(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}

// Create creates a new bill
func (r *billRepository) Create(ctx context.Context, bill *domain.RecurringBill) error {
	query := `
		INSERT INTO recurring_bills (id, name, amount, due_day, category, color, total, amount_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var total interface{}
	if bill.Total != nil {
		total = bill.Total.String()
	}

	_, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.Name,
		bill.Amount.String(),
		bill.DueDay,
		bill.Category,
		bill.Color,
		total,
		bill.AmountPaid.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}

	return nil
}

// Update replaces an existing bill
func (r *billRepository) Update(ctx context.Context, bill *domain.RecurringBill) error {
	query := `
		UPDATE recurring_bills
		SET name = $2, amount = $3, due_day = $4, category = $5, color = $6, total = $7, amount_paid = $8
		WHERE id = $1
	`

	var total interface{}
	if bill.Total != nil {
		total = bill.Total.String()
	}

	result, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.Name,
		bill.Amount.String(),
		bill.DueDay,
		bill.Category,
		bill.Color,
		total,
		bill.AmountPaid.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bill %s: %w", bill.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a bill
func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM recurring_bills WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bill %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
