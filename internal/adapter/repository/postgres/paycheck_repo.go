package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

// paycheckRepository implements domain.PaycheckRepository
type paycheckRepository struct {
	db *DB
}

// NewPaycheckRepository creates a new paycheck repository
func NewPaycheckRepository(db *DB) domain.PaycheckRepository {
	return &paycheckRepository{db: db}
}

// List retrieves all paychecks ordered by anchor date
func (r *paycheckRepository) List(ctx context.Context) ([]*domain.Paycheck, error) {
	query := `
		SELECT id, amount, date, frequency, second_day_of_month, category
		FROM paychecks
		ORDER BY date, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list paychecks: %w", err)
	}
	defer rows.Close()

	paychecks := make([]*domain.Paycheck, 0)
	for rows.Next() {
		var pc domain.Paycheck
		var amountStr, dateStr, frequency string

		err := rows.Scan(&pc.ID, &amountStr, &dateStr, &frequency, &pc.SecondDayOfMonth, &pc.Category)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paycheck: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		pc.Amount = amount

		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		pc.Date = date
		pc.Frequency = domain.PayFrequency(frequency)

		paychecks = append(paychecks, &pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate paychecks: %w", err)
	}

	return paychecks, nil
}

// Create creates a new paycheck
func (r *paycheckRepository) Create(ctx context.Context, paycheck *domain.Paycheck) error {
	query := `
		INSERT INTO paychecks (id, amount, date, frequency, second_day_of_month, category)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		paycheck.ID,
		paycheck.Amount.String(),
		paycheck.Date.String(),
		string(paycheck.Frequency),
		paycheck.SecondDayOfMonth,
		paycheck.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to create paycheck: %w", err)
	}

	return nil
}

// Update replaces an existing paycheck
func (r *paycheckRepository) Update(ctx context.Context, paycheck *domain.Paycheck) error {
	query := `
		UPDATE paychecks
		SET amount = $2, date = $3, frequency = $4, second_day_of_month = $5, category = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		paycheck.ID,
		paycheck.Amount.String(),
		paycheck.Date.String(),
		string(paycheck.Frequency),
		paycheck.SecondDayOfMonth,
		paycheck.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to update paycheck: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("paycheck %s: %w", paycheck.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a paycheck
func (r *paycheckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM paychecks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete paycheck: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("paycheck %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
