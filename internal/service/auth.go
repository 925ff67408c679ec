package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spendlog/internal/auth"
	"spendlog/internal/models"
	"spendlog/internal/storage"
)

// SessionDuration is how long sessions last.
const SessionDuration = 7 * 24 * time.Hour

// Auth handles registration and the session lifecycle.
type Auth struct {
	db *storage.DB
}

// NewAuth creates an Auth service backed by db.
func NewAuth(db *storage.DB) *Auth {
	return &Auth{db: db}
}

// AuthSession is the result of validating a session token.
type AuthSession struct {
	User      *models.User
	ExpiresAt time.Time
	// Renewed is set when the session lifetime was extended during
	// validation; callers should refresh the client cookie.
	Renewed bool
}

// Register creates a new account. The password is hashed before it is stored;
// plaintext never leaves this function.
func (a *Auth) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, invalidInput("username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalidInput("a valid email is required")
	}
	if password == "" {
		return nil, invalidInput("password is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.db.CreateUser(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and establishes a server-side session.
// Returns the opaque session token and its expiry.
func (a *Auth) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := a.db.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("look up user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate session token: %w", err)
	}

	expiresAt := time.Now().Add(SessionDuration)
	if err := a.db.CreateSession(ctx, token, user.ID, expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}

	return token, expiresAt, nil
}

// Authenticate resolves a session token to its user, failing with
// ErrUnauthenticated for missing, unknown, or expired tokens.
//
// Sessions roll: once past the halfway point of their lifetime they are
// extended, so active users stay logged in while idle sessions expire.
func (a *Auth) Authenticate(ctx context.Context, token string) (*AuthSession, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	info, err := a.db.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("look up session: %w", err)
	}

	now := time.Now()
	if !info.ExpiresAt.After(now) {
		_ = a.db.DeleteSession(ctx, token)
		return nil, ErrUnauthenticated
	}

	session := &AuthSession{User: info.User, ExpiresAt: info.ExpiresAt}
	if info.ExpiresAt.Sub(now) < SessionDuration/2 {
		newExpiry := now.Add(SessionDuration)
		// Best effort: a failed renewal just leaves the current expiry
		if err := a.db.RenewSession(ctx, token, newExpiry); err == nil {
			session.ExpiresAt = newExpiry
			session.Renewed = true
		}
	}

	return session, nil
}

// Logout destroys the session. Unknown tokens are not an error; logout
// always leaves the caller anonymous.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.db.DeleteSession(ctx, token)
}
