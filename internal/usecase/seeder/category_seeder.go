package seeder

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

// defaultCategory defines the structure for a default category to be seeded
type defaultCategory struct {
	Name  string
	Type  domain.CategoryType
	Color string
}

var defaultCategories = []defaultCategory{
	{Name: "Income", Type: domain.CategoryTypeIncome, Color: "bg-green-500"},
	{Name: "Housing", Type: domain.CategoryTypeBill, Color: "bg-blue-500"},
	{Name: "Utilities", Type: domain.CategoryTypeBill, Color: "bg-yellow-500"},
	{Name: "Subscriptions", Type: domain.CategoryTypeBill, Color: "bg-purple-500"},
	{Name: "Debt", Type: domain.CategoryTypeBill, Color: "bg-red-500"},
	{Name: "Food", Type: domain.CategoryTypeExpense, Color: "bg-orange-500"},
	{Name: "Other", Type: domain.CategoryTypeGeneral, Color: "bg-gray-500"},
}

// CategorySeeder ensures the default display categories exist
type CategorySeeder struct {
	repo domain.CategoryRepository
}

// NewCategorySeeder creates a new CategorySeeder instance
func NewCategorySeeder(repo domain.CategoryRepository) *CategorySeeder {
	return &CategorySeeder{
		repo: repo,
	}
}

// Seed creates every default category that does not exist yet.
// Categories the user has already created (or edited) are left alone.
func (s *CategorySeeder) Seed(ctx context.Context) error {
	for _, def := range defaultCategories {
		_, err := s.repo.GetByName(ctx, def.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		category := &domain.Category{
			ID:    uuid.New(),
			Name:  def.Name,
			Type:  def.Type,
			Color: def.Color,
		}

		if err := category.Validate(); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, category); err != nil {
			return err
		}
	}

	return nil
}
