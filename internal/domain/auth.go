// Package domain contains the core business entities, calculators and the
// repository ports of the heart-failure self-management service.
package domain

import (
	"context"
	"time"
)

// Account is the login of the enrolled patient. There is at most one.
type Account struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session represents an active login session.
type Session struct {
	Token     string
	Username  string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AccountRepository defines the port for the patient account.
type AccountRepository interface {
	// GetAccount returns nil when no account has been set up.
	GetAccount(ctx context.Context) (*Account, error)
	// CreateAccount fails if an account already exists.
	CreateAccount(ctx context.Context, username, passwordHash string) (*Account, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, s Session) error
	// GetByToken returns nil for unknown tokens.
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
