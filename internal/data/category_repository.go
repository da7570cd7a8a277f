package data

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// CategoryRepository handles database operations for the seeded category
// lookup table. Categories are created by migration, never at runtime.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll retrieves all categories ordered by name.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	err := r.db.SelectContext(ctx, &categories, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID finds a category by its ID. Not found is not an error.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	var category Category
	err := r.db.GetContext(ctx, &category, `SELECT id, name FROM categories WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}
