package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// Get retrieves the singleton account row
func (r *accountRepository) Get(ctx context.Context) (*domain.Account, error) {
	query := `
		SELECT starting_balance, current_balance, balance_as_of_date
		FROM account
		WHERE id = 1
	`

	var startingStr, currentStr, asOfStr string

	err := r.db.QueryRowContext(ctx, query).Scan(&startingStr, &currentStr, &asOfStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	starting, err := decimal.NewFromString(startingStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse starting_balance: %w", err)
	}
	current, err := decimal.NewFromString(currentStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current_balance: %w", err)
	}
	asOf, err := domain.ParseDate(asOfStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance_as_of_date: %w", err)
	}

	return &domain.Account{
		StartingBalance: starting,
		CurrentBalance:  current,
		BalanceAsOfDate: asOf,
	}, nil
}

// Save inserts or replaces the singleton account row
func (r *accountRepository) Save(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO account (id, starting_balance, current_balance, balance_as_of_date)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			starting_balance = EXCLUDED.starting_balance,
			current_balance = EXCLUDED.current_balance,
			balance_as_of_date = EXCLUDED.balance_as_of_date
	`

	_, err := r.db.ExecContext(ctx, query,
		account.StartingBalance.String(),
		account.CurrentBalance.String(),
		account.BalanceAsOfDate.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	return nil
}
