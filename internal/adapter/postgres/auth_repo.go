package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"caltrack/internal/domain"
)

const userColumns = "id, username, password_hash, created_at"

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername retrieves an account by username, nil if not found.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

// GetByID retrieves an account by ID, nil if not found.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// Create stores a new account. The tracker is single-owner, so this runs
// once at setup or on a first SSO sign-in.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING "+userColumns,
		username, passwordHash, time.Now().UTC(),
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Count returns the number of accounts; the setup flow refuses to create
// a second one.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// SessionRepo implements session storage on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a new session token.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)",
		token, userID, expiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

// GetByToken retrieves a session by token, nil if not found. Expiry is the
// caller's check; an expired row is still returned.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete invalidates a session token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired sweeps rows whose expiry has passed.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < NOW()")
	return err
}
