package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when the requested entity does not
// exist. Callers map it to their own not-found surface (the REST adapter
// returns 404; the setup flow redirects when no account exists yet).
var ErrNotFound = errors.New("not found")

// AccountRepository defines the interface for account persistence operations.
// The system tracks a single checking account.
type AccountRepository interface {
	// Get retrieves the account, or ErrNotFound if none has been set up
	Get(ctx context.Context) (*Account, error)

	// Save creates or replaces the account
	Save(ctx context.Context, account *Account) error
}

// BillRepository defines the interface for recurring bill persistence operations
type BillRepository interface {
	// GetByID retrieves a bill by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*RecurringBill, error)

	// List retrieves all bills ordered by due day
	List(ctx context.Context) ([]*RecurringBill, error)

	// Create creates a new bill
	Create(ctx context.Context, bill *RecurringBill) error

	// Update replaces an existing bill
	Update(ctx context.Context, bill *RecurringBill) error

	// Delete removes a bill by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaycheckRepository defines the interface for paycheck persistence operations
type PaycheckRepository interface {
	// List retrieves all paychecks ordered by anchor date
	List(ctx context.Context) ([]*Paycheck, error)

	// Create creates a new paycheck
	Create(ctx context.Context, paycheck *Paycheck) error

	// Update replaces an existing paycheck
	Update(ctx context.Context, paycheck *Paycheck) error

	// Delete removes a paycheck by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseRepository defines the interface for expense persistence operations
type ExpenseRepository interface {
	// List retrieves all expenses ordered by date
	List(ctx context.Context) ([]*Expense, error)

	// Create creates a new expense
	Create(ctx context.Context, expense *Expense) error

	// Update replaces an existing expense
	Update(ctx context.Context, expense *Expense) error

	// Delete removes an expense by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the interface for category persistence operations
type CategoryRepository interface {
	// GetByName retrieves a category by its unique name
	GetByName(ctx context.Context, name string) (*Category, error)

	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]*Category, error)

	// Create creates a new category
	Create(ctx context.Context, category *Category) error

	// Delete removes a category by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// PriorityRepository defines the interface for bill priority persistence operations
type PriorityRepository interface {
	// List retrieves all bill priorities
	List(ctx context.Context) ([]*BillPriority, error)

	// Save creates or replaces the priority for a bill
	Save(ctx context.Context, priority *BillPriority) error

	// Delete removes the priority for a bill
	Delete(ctx context.Context, billID uuid.UUID) error
}
