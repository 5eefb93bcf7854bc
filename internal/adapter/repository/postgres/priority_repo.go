package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

// priorityRepository implements domain.PriorityRepository
type priorityRepository struct {
	db *DB
}

// NewPriorityRepository creates a new bill priority repository
func NewPriorityRepository(db *DB) domain.PriorityRepository {
	return &priorityRepository{db: db}
}

// List retrieves all bill priorities
func (r *priorityRepository) List(ctx context.Context) ([]*domain.BillPriority, error) {
	query := `
		SELECT bill_id, monthly_extra_payment
		FROM bill_priorities
		ORDER BY bill_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill priorities: %w", err)
	}
	defer rows.Close()

	priorities := make([]*domain.BillPriority, 0)
	for rows.Next() {
		var priority domain.BillPriority
		var extraStr string

		err := rows.Scan(&priority.BillID, &extraStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill priority: %w", err)
		}

		extra, err := decimal.NewFromString(extraStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse monthly_extra_payment: %w", err)
		}
		priority.MonthlyExtraPayment = extra

		priorities = append(priorities, &priority)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill priorities: %w", err)
	}

	return priorities, nil
}

// Save inserts or replaces the priority for a bill
func (r *priorityRepository) Save(ctx context.Context, priority *domain.BillPriority) error {
	query := `
		INSERT INTO bill_priorities (bill_id, monthly_extra_payment)
		VALUES ($1, $2)
		ON CONFLICT (bill_id) DO UPDATE SET
			monthly_extra_payment = EXCLUDED.monthly_extra_payment
	`

	_, err := r.db.ExecContext(ctx, query,
		priority.BillID,
		priority.MonthlyExtraPayment.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save bill priority: %w", err)
	}

	return nil
}

// Delete removes the priority for a bill
func (r *priorityRepository) Delete(ctx context.Context, billID uuid.UUID) error {
	query := `DELETE FROM bill_priorities WHERE bill_id = $1`

	result, err := r.db.ExecContext(ctx, query, billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill priority: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bill priority %s: %w", billID, domain.ErrNotFound)
	}

	return nil
}
