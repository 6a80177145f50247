package repository

import (
	"context"

	"shopfront/internal/domain"
)

// CategoryRepository defines persistence operations for Category entities.
// Categories are written only by the seeding process.
type CategoryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, category *domain.Category) error
	// ListPage returns categories ordered by name ascending.
	ListPage(ctx context.Context, offset, limit int) ([]domain.Category, error)
	Count(ctx context.Context) (int, error)
	// FilterExisting reports which of the given ids exist.
	FilterExisting(ctx context.Context, ids []string) (map[string]struct{}, error)
}
