package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopfront/internal/domain"
	"shopfront/internal/repository"
)

const createCategoriesTable = `
CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
`

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCategoriesTable); err != nil {
		return fmt.Errorf("create categories table: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO categories (id, name) VALUES (?, ?)`,
		category.ID,
		category.Name,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("category %s: %w", category.Name, repository.ErrAlreadyExists)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListPage(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name
FROM categories
ORDER BY name ASC
LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0, limit)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return total, nil
}

func (r *CategoryRepository) FilterExisting(ctx context.Context, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id FROM categories WHERE id IN (%s)`, placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query category ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		existing[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category ids: %w", err)
	}
	return existing, nil
}
