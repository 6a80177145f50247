package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/domain"
	"shopfront/internal/repository"
)

func newRepos(t *testing.T) (*sql.DB, repository.UserRepository, repository.CategoryRepository) {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	categories := NewCategoryRepository(db)
	require.NoError(t, categories.Init(ctx))
	users := NewUserRepository(db)
	require.NoError(t, users.Init(ctx))

	return db, users, categories
}

func newUser(email string) *domain.User {
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	_, users, _ := newRepos(t)
	ctx := context.Background()

	u := newUser("a@example.com")
	require.NoError(t, users.Create(ctx, u))
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := users.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
}

func TestUserRepository_NotFound(t *testing.T) {
	_, users, _ := newRepos(t)

	_, err := users.GetByEmail(context.Background(), "missing@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	_, users, _ := newRepos(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newUser("a@example.com")))

	err := users.Create(ctx, newUser("a@example.com"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrAlreadyExists))
}

func TestUserRepository_ReplaceInterests(t *testing.T) {
	_, users, categories := newRepos(t)
	ctx := context.Background()

	u := newUser("a@example.com")
	require.NoError(t, users.Create(ctx, u))

	var ids []string
	for _, name := range []string{"Books", "Games", "Music"} {
		c := &domain.Category{ID: uuid.NewString(), Name: name}
		require.NoError(t, categories.Create(ctx, c))
		ids = append(ids, c.ID)
	}

	require.NoError(t, users.ReplaceInterests(ctx, u.ID, ids[:2]))
	got, err := users.GetInterests(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// replace drops what is omitted
	require.NoError(t, users.ReplaceInterests(ctx, u.ID, ids[2:]))
	got, err = users.GetInterests(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Music", got[0].Name)

	// a bad id aborts the whole transaction
	err = users.ReplaceInterests(ctx, u.ID, []string{ids[0], "no-such-category"})
	require.Error(t, err)
	got, err = users.GetInterests(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got, 1, "failed replace must not leave partial state")
	assert.Equal(t, "Music", got[0].Name)
}

func TestCategoryRepository_ListPageOrdersByName(t *testing.T) {
	_, _, categories := newRepos(t)
	ctx := context.Background()

	for _, name := range []string{"Zebra", "Apple", "Mango"} {
		require.NoError(t, categories.Create(ctx, &domain.Category{ID: uuid.NewString(), Name: name}))
	}

	page, err := categories.ListPage(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "Apple", page[0].Name)
	assert.Equal(t, "Mango", page[1].Name)
	assert.Equal(t, "Zebra", page[2].Name)

	total, err := categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestCategoryRepository_FilterExisting(t *testing.T) {
	_, _, categories := newRepos(t)
	ctx := context.Background()

	c := &domain.Category{ID: uuid.NewString(), Name: "Books"}
	require.NoError(t, categories.Create(ctx, c))

	existing, err := categories.FilterExisting(ctx, []string{c.ID, "bogus"})
	require.NoError(t, err)
	assert.Contains(t, existing, c.ID)
	assert.NotContains(t, existing, "bogus")

	empty, err := categories.FilterExisting(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
