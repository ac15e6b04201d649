package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stellaracademy/academy-be/internal/models"
	"github.com/stellaracademy/academy-be/internal/storage"
)

// ErrEmailTaken is returned when a registration reuses an existing email.
var ErrEmailTaken = errors.New("user already exists")

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so a caller cannot tell which field was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service orchestrates registration and login over the injected stores and
// token manager. Input validation happens before the service is called.
type Service struct {
	users    storage.UserStore
	profiles storage.ProfileStore
	tokens   *TokenManager
}

// NewService constructs the auth service.
func NewService(users storage.UserStore, profiles storage.ProfileStore, tokens *TokenManager) *Service {
	return &Service{users: users, profiles: profiles, tokens: tokens}
}

// Register creates a new identity with the default student role plus an empty
// profile for it. The two inserts are separate statements, not a transaction:
// a profile-create failure leaves a user row with no profile.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	email = strings.TrimSpace(email)

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("look up email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        email,
		Role:         models.RoleStudent,
		PasswordHash: hash,
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			// Lost the race against a concurrent registration with the
			// same email; the store's unique index caught it.
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	if err := s.profiles.CreateEmptyProfile(ctx, created.ID); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Login verifies the credentials and issues a session token carrying the
// user's id and role.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up email: %w", err)
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
