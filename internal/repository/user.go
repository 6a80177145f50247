package repository

import (
	"context"
	"errors"

	"shopfront/internal/domain"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned on a unique-constraint violation.
	ErrAlreadyExists = errors.New("already exists")
)

// UserRepository defines persistence operations for User entities and their
// interest relation.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetInterests(ctx context.Context, userID string) ([]domain.Category, error)
	// ReplaceInterests swaps the user's whole interest set for categoryIDs in
	// a single transaction. Ids absent from the input are removed.
	ReplaceInterests(ctx context.Context, userID string, categoryIDs []string) error
}
