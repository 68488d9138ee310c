package domain

import (
	"context"
	"time"
)

// User is an account allowed to operate the tracker. The deployment model
// is single-owner: the first account, created through setup or on first
// SSO sign-in, is normally the only one. SSO accounts carry an empty
// password hash and cannot log in with a password.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is a bearer token bound to a user. Expiry is enforced at
// validation time; DeleteExpired is housekeeping, not the enforcement.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session has passed its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// UserRepository is the port for account storage. Lookups return nil with
// a nil error when no account matches.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository is the port for session storage. GetByToken returns
// nil with a nil error for an unknown token.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
