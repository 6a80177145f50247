package service

import (
	"context"
	"errors"
	"strings"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
	"shopfront/internal/repository"
)

const (
	// DefaultPageLimit is the page size used when the caller omits one.
	DefaultPageLimit = 6
	maxPageLimit     = 100
)

// CategoryService exposes the category catalog and per-user interest set.
type CategoryService interface {
	List(ctx context.Context, page, limit int) (*domain.CategoryPage, error)
	GetUserInterests(ctx context.Context, userID string) ([]domain.Category, error)
	// SaveUserInterests replaces the user's whole interest set with
	// categoryIDs. Full replacement, not a merge.
	SaveUserInterests(ctx context.Context, userID string, categoryIDs []string) ([]domain.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	users      repository.UserRepository
}

func NewCategoryService(categories repository.CategoryRepository, users repository.UserRepository) CategoryService {
	return &categoryService{
		categories: categories,
		users:      users,
	}
}

func (s *categoryService) List(ctx context.Context, page, limit int) (*domain.CategoryPage, error) {
	if page < 1 {
		return nil, apperr.Validation("page must be at least 1")
	}
	if limit < 1 || limit > maxPageLimit {
		return nil, apperr.Validation("limit must be between 1 and %d", maxPageLimit)
	}

	total, err := s.categories.Count(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "list categories")
	}

	// a page past the end is not an error, just empty
	categories, err := s.categories.ListPage(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, apperr.Internal(err, "list categories")
	}

	totalPages := (total + limit - 1) / limit
	return &domain.CategoryPage{
		Categories: categories,
		Pagination: domain.Pagination{
			Page:            page,
			Limit:           limit,
			Total:           total,
			TotalPages:      totalPages,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}, nil
}

func (s *categoryService) GetUserInterests(ctx context.Context, userID string) ([]domain.Category, error) {
	if userID == "" {
		return nil, apperr.Authentication("user not authenticated")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err, "load user interests")
	}

	interests, err := s.users.GetInterests(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err, "load user interests")
	}
	return interests, nil
}

func (s *categoryService) SaveUserInterests(ctx context.Context, userID string, categoryIDs []string) ([]domain.Category, error) {
	if userID == "" {
		return nil, apperr.Authentication("user not authenticated")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err, "save user interests")
	}

	ids := dedupe(categoryIDs)

	existing, err := s.categories.FilterExisting(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(err, "save user interests")
	}
	var invalid []string
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return nil, apperr.Validation("invalid category ids: %s", strings.Join(invalid, ", "))
	}

	if err := s.users.ReplaceInterests(ctx, userID, ids); err != nil {
		return nil, apperr.Internal(err, "save user interests")
	}

	interests, err := s.users.GetInterests(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err, "save user interests")
	}
	return interests, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
