package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/apperr"
	"shopfront/internal/auth"
	"shopfront/internal/domain"
	"shopfront/internal/repository"
)

const (
	bcryptCost        = 12
	minPasswordLength = 6
)

// AuthService describes account lifecycle operations shared by every
// transport that exposes signup or login.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login returns the redacted user plus a signed session token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type authService struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, secret []byte, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = auth.DefaultTTL
	}
	return &authService{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("invalid email format")
	}
	if password == "" {
		return nil, apperr.Validation("password is required")
	}
	if len(password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("user already exists with this email")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err, "something went wrong during signup")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err, "something went wrong during signup")
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// two signups racing on the same email: the store's unique
		// constraint is the authority
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, apperr.Conflict("user already exists with this email")
		}
		return nil, apperr.Internal(err, "something went wrong during signup")
	}

	return sanitizeUser(user), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	// same normalization as Signup, or padded passwords could never verify
	password = strings.TrimSpace(password)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperr.NotFound("user not found")
		}
		return nil, "", apperr.Internal(err, "something went wrong during login")
	}

	if user.PasswordHash == "" {
		return nil, "", apperr.Authentication("password not set for this user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Authentication("invalid password")
	}

	token, err := auth.Issue(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", apperr.Internal(err, "something went wrong during login")
	}

	return sanitizeUser(user), token, nil
}

func (s *authService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err, "lookup user")
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
