package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/apperr"
	"shopfront/internal/auth"
	"shopfront/internal/repository"
	"shopfront/internal/repository/sqlite"
)

var testSecret = []byte("test-secret")

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	categoryRepo := sqlite.NewCategoryRepository(db)
	require.NoError(t, categoryRepo.Init(ctx))
	userRepo := sqlite.NewUserRepository(db)
	require.NoError(t, userRepo.Init(ctx))

	return db
}

func newAuthService(t *testing.T) (AuthService, repository.UserRepository) {
	t.Helper()
	users := sqlite.NewUserRepository(newTestDB(t))
	return NewAuthService(users, testSecret, time.Hour), users
}

func TestSignupThenLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash, "hash must never leave the service")

	loggedIn, token, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	userID, err := auth.Verify(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestSignupThenLogin_PaddedPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	// whitespace padding is normalized the same way on both paths, so the
	// credentials typed at signup keep working at login
	_, err := svc.Signup(ctx, "Alice", "alice@example.com", "  hunter22  ")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "  hunter22  ")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err, "trimmed form is the stored credential")
}

func TestSignup_Validation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "", "a@example.com", "secret1"},
		{"empty email", "Bob", "", "secret1"},
		{"bad email", "Bob", "not-an-email", "secret1"},
		{"empty password", "Bob", "b@example.com", ""},
		{"short password", "Bob", "b@example.com", "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tc.userName, tc.email, tc.password)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "Other Name", "alice@example.com", "different-password")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestGetByID(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.GetByID(ctx, "missing-id")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
