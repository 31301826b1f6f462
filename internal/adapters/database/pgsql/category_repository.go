package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
)

// PgxCategoryRepository implements the category repository using pgxpool.
type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new PgxCategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `
	category_id, name, nature, color, COALESCE(parent_category_id, ''),
	created_at, updated_at
`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	category := &domain.Category{}
	err := row.Scan(
		&category.CategoryID, &category.Name, &category.Nature,
		&category.Color, &category.ParentCategoryID,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1 AND deleted_at IS NULL`
	category, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding category by ID: %w", err)
	}
	return category, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE deleted_at IS NULL ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (
			category_id, name, nature, color, parent_category_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		category.CategoryID, category.Name, category.Nature, category.Color,
		category.ParentCategoryID, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving category: %w", err)
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories SET
			name = $2, nature = $3, color = $4,
			parent_category_id = NULLIF($5, ''), updated_at = $6
		WHERE category_id = $1 AND deleted_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query,
		category.CategoryID, category.Name, category.Nature, category.Color,
		category.ParentCategoryID, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error updating category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory soft-deletes the category and its direct subcategories in a
// single statement, so a reload never sees an orphaned subcategory.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	query := `
		UPDATE categories SET deleted_at = $2
		WHERE (category_id = $1 OR parent_category_id = $1) AND deleted_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query, categoryID, time.Now())
	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
