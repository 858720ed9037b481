package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"heartcare/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 24 * time.Hour

const minPasswordLen = 8

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrAccountExists indicates that setup has already been completed.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountMismatch indicates an SSO identity that is not the patient account.
	ErrAccountMismatch = errors.New("sso identity does not match account")
)

// AuthService handles authentication and session management.
type AuthService struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates a new authentication service. A non-positive ttl
// selects DefaultSessionTTL.
func NewAuthService(accounts domain.AccountRepository, sessions domain.SessionRepository, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// NeedsSetup reports whether the patient account has not been created yet.
func (s *AuthService) NeedsSetup(ctx context.Context) (bool, error) {
	acct, err := s.accounts.GetAccount(ctx)
	if err != nil {
		return false, err
	}
	return acct == nil, nil
}

// Setup creates the patient account. It only succeeds once.
func (s *AuthService) Setup(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username required: %w", domain.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrValidation)
	}

	acct, err := s.accounts.GetAccount(ctx)
	if err != nil {
		return err
	}
	if acct != nil {
		return ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.accounts.CreateAccount(ctx, username, string(hash))
	return err
}

// Login authenticates the patient and creates a session.
func (s *AuthService) Login(ctx context.Context, username, password, userAgent string) (string, error) {
	acct, err := s.accounts.GetAccount(ctx)
	if err != nil || acct == nil {
		return "", ErrInvalidCredentials
	}
	if !ConstantTimeCompare(acct.Username, username) || acct.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.newSession(ctx, acct.Username, userAgent)
}

// LoginWithSSO creates a session for an identity already verified by the
// OIDC provider. The first SSO login provisions the account when none
// exists; afterwards the identity must match it.
func (s *AuthService) LoginWithSSO(ctx context.Context, username, userAgent string) (string, error) {
	if username == "" {
		return "", ErrInvalidCredentials
	}
	acct, err := s.accounts.GetAccount(ctx)
	if err != nil {
		return "", err
	}
	if acct == nil {
		// SSO-only accounts have no password and cannot use Login.
		acct, err = s.accounts.CreateAccount(ctx, username, "")
		if err != nil {
			// Lost a race with another setup; re-read.
			if acct, err = s.accounts.GetAccount(ctx); err != nil || acct == nil {
				return "", ErrAccountExists
			}
		}
	}
	if acct.Username != username {
		return "", ErrAccountMismatch
	}

	return s.newSession(ctx, acct.Username, userAgent)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession checks if a session token is valid and matches the user agent.
func (s *AuthService) ValidateSession(ctx context.Context, token, userAgent string) (*domain.Account, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}

	if s.now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	if session.UserAgent != userAgent {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	acct, err := s.accounts.GetAccount(ctx)
	if err != nil || acct == nil || acct.Username != session.Username {
		return nil, ErrSessionNotFound
	}

	return acct, nil
}

// PurgeExpired removes expired sessions.
func (s *AuthService) PurgeExpired(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx, s.now())
}

func (s *AuthService) newSession(ctx context.Context, username, userAgent string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	now := s.now()
	err = s.sessions.Create(ctx, domain.Session{
		Token:     token,
		Username:  username,
		UserAgent: userAgent,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
