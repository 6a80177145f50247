package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/repository"
)

const createUsersTables = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS user_interests (
	user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, category_id)
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTables); err != nil {
		return fmt.Errorf("create users tables: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("user %s: %w", user.Email, repository.ErrAlreadyExists)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, created_at, updated_at
FROM users
WHERE email = ?`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, created_at, updated_at
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) GetInterests(ctx context.Context, userID string) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.name
FROM categories c
JOIN user_interests ui ON ui.category_id = c.id
WHERE ui.user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query interests: %w", err)
	}
	defer rows.Close()

	interests := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan interest: %w", err)
		}
		interests = append(interests, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interests: %w", err)
	}
	return interests, nil
}

// ReplaceInterests rewrites the user's interest rows inside one transaction
// so concurrent saves for the same user never interleave partial sets.
func (r *UserRepository) ReplaceInterests(ctx context.Context, userID string, categoryIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin interests tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_interests WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear interests: %w", err)
	}
	for _, categoryID := range categoryIDs {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO user_interests (user_id, category_id) VALUES (?, ?)`,
			userID, categoryID,
		); err != nil {
			return fmt.Errorf("insert interest %s: %w", categoryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit interests: %w", err)
	}
	return nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
