package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/HabitTracker/internal/apperr"
	"github.com/atinyakov/HabitTracker/internal/auth"
	"github.com/atinyakov/HabitTracker/internal/metrics"
	"github.com/atinyakov/HabitTracker/internal/models"
	"github.com/atinyakov/HabitTracker/internal/repository"
)

const (
	msgMissingUserInfo    = "Missing required user information"
	msgUserExists         = "User already exists"
	msgEmailExists        = "Email already exists"
	msgInvalidCredentials = "Invalid credentials"
)

// UserRepository defines the persistence operations
// required by the authentication service.
type UserRepository interface {
	// UsernameExists returns true if a user with the given username exists.
	// ctx carries deadlines, cancellation signals, and other request-scoped values.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// EmailExists returns true if a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// Create stores a new user and assigns its id.
	Create(ctx context.Context, u *models.User) error
	// FindByUsername returns the user with the given username.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenIssuer signs credentials for authenticated users.
type TokenIssuer interface {
	// Issue returns a signed token for userID.
	Issue(userID string) (string, error)
}

// AuthService implements registration and login by delegating
// to a UserRepository.
type AuthService struct {
	// users performs the data-layer operations.
	users UserRepository
	// tokens signs credentials on login.
	tokens TokenIssuer
}

// NewAuthService constructs a new AuthService using the provided repository
// and token issuer.
func NewAuthService(users UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates an account. Usernames and emails are unique; the
// username is checked before the email.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (err error) {
	defer func() { countAttempt("register", err) }()

	if username == "" || password == "" || email == "" {
		return apperr.Validation(msgMissingUserInfo)
	}

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return apperr.Conflict(msgUserExists)
	}

	taken, err = s.users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return apperr.Conflict(msgEmailExists)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.users.Create(ctx, &models.User{Username: username, Email: email, PasswordHash: hash})
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return apperr.Conflict(msgUserExists)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperr.Conflict(msgEmailExists)
	}
	return err
}

// Login checks the password of username and returns a signed token.
// An unknown username and a wrong password are reported the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (token string, err error) {
	defer func() { countAttempt("login", err) }()

	if username == "" || password == "" {
		return "", apperr.Validation(msgMissingUserInfo)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", apperr.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", apperr.Unauthorized(msgInvalidCredentials)
	}
	return s.tokens.Issue(user.ID)
}

func countAttempt(action string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.AuthAttempts.WithLabelValues(action, result).Inc()
}
