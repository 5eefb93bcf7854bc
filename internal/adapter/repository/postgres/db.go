// Package postgres implements the domain repository interfaces on top of
// PostgreSQL. Monetary values are stored as DECIMAL and scanned through
// strings into decimal.Decimal; dates are stored as YYYY-MM-DD text.
package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=balancecal sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Migrate creates the schema if it does not exist yet. The account table is
// a singleton keyed by a fixed row id.
func (db *DB) Migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS account (
			id INTEGER PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			starting_balance DECIMAL(14,2) NOT NULL,
			current_balance DECIMAL(14,2) NOT NULL,
			balance_as_of_date TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS recurring_bills (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			amount DECIMAL(14,2) NOT NULL,
			due_day INTEGER NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			total DECIMAL(14,2),
			amount_paid DECIMAL(14,2) NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS paychecks (
			id UUID PRIMARY KEY,
			amount DECIMAL(14,2) NOT NULL,
			date TEXT NOT NULL,
			frequency TEXT NOT NULL,
			second_day_of_month INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			amount DECIMAL(14,2) NOT NULL,
			date TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			related_bill_id UUID
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS bill_priorities (
			bill_id UUID PRIMARY KEY,
			monthly_extra_payment DECIMAL(14,2) NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
