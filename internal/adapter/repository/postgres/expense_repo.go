package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

// expenseRepository implements domain.ExpenseRepository
type expenseRepository struct {
	db *DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *DB) domain.ExpenseRepository {
	return &expenseRepository{db: db}
}

// List retrieves all expenses ordered by date
func (r *expenseRepository) List(ctx context.Context) ([]*domain.Expense, error) {
	query := `
		SELECT id, name, amount, date, category, related_bill_id
		FROM expenses
		ORDER BY date, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		var exp domain.Expense
		var amountStr, dateStr string
		var relatedID sql.NullString

		err := rows.Scan(&exp.ID, &exp.Name, &amountStr, &dateStr, &exp.Category, &relatedID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		exp.Amount = amount

		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		exp.Date = date

		if relatedID.Valid {
			billID, err := uuid.Parse(relatedID.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse related_bill_id: %w", err)
			}
			exp.RelatedBillID = &billID
		}

		expenses = append(expenses, &exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// Create creates a new expense
func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, name, amount, date, category, related_bill_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var relatedID interface{}
	if expense.RelatedBillID != nil {
		relatedID = *expense.RelatedBillID
	}

	_, err := r.db.ExecContext(ctx, query,
		expense.ID,
		expense.Name,
		expense.Amount.String(),
		expense.Date.String(),
		expense.Category,
		relatedID,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// Update replaces an existing expense
func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET name = $2, amount = $3, date = $4, category = $5, related_bill_id = $6
		WHERE id = $1
	`

	var relatedID interface{}
	if expense.RelatedBillID != nil {
		relatedID = *expense.RelatedBillID
	}

	result, err := r.db.ExecContext(ctx, query,
		expense.ID,
		expense.Name,
		expense.Amount.String(),
		expense.Date.String(),
		expense.Category,
		relatedID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an expense
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM expenses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
