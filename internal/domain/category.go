package domain

import (
	"errors"

	"github.com/google/uuid"
)

// CategoryType classifies what kind of events a category labels.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBill    CategoryType = "bill"
	CategoryTypeGeneral CategoryType = "general"
)

// Category is a display label for bills, paychecks and expenses. Categories
// are purely descriptive and never affect projection arithmetic.
type Category struct {
	ID    uuid.UUID    `json:"id"`
	Name  string       `json:"name"`
	Type  CategoryType `json:"type"`
	Color string       `json:"color,omitempty"`
}

// Validate ensures the category adheres to domain rules
func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.New("category name cannot be empty")
	}
	switch c.Type {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeBill, CategoryTypeGeneral:
	default:
		return errors.New("category type must be income, expense, bill or general")
	}
	return nil
}
