package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

// categoryRepository implements domain.CategoryRepository
type categoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

// GetByName retrieves a category by its unique name
func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `
		SELECT id, name, type, color
		FROM categories
		WHERE name = $1
	`

	var category domain.Category
	var categoryType string

	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&category.ID,
		&category.Name,
		&categoryType,
		&category.Color,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}

	category.Type = domain.CategoryType(categoryType)
	return &category, nil
}

// List retrieves all categories ordered by name
func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, type, color
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		var categoryType string

		err := rows.Scan(&category.ID, &category.Name, &categoryType, &category.Color)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		category.Type = domain.CategoryType(categoryType)

		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// Create creates a new category
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, type, color)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		string(category.Type),
		category.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Delete removes a category
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
