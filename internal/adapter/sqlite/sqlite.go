// Package sqlite implements the durable snapshot store and auth
// repositories on a local SQLite file. This is the default deployment: a
// single local store with whole-snapshot, last-write-wins semantics.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"caltrack/internal/domain"
)

const (
	keyDailyGoal = "daily_goal"
	keyEntries   = "entries"
)

// DB wraps a *sql.DB and implements the domain persistence interfaces.
type DB struct {
	sql *sql.DB
}

// Ensure interfaces are met.
var _ domain.Persistence = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// Open opens (creating if necessary) the SQLite database at path, pings it,
// and runs migrations.
func Open(path string) (*DB, error) {
	s, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The snapshot writes are single-writer; one connection avoids
	// SQLITE_BUSY churn.
	s.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshot (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);`,
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// --- Persistence ---

// LoadGoal returns the saved daily goal, or 0 when nothing was saved yet.
func (d *DB) LoadGoal(ctx context.Context) (int, error) {
	value, err := d.get(ctx, keyDailyGoal)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}
	goal, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("corrupt goal snapshot %q: %w", value, err)
	}
	return goal, nil
}

// LoadEntries returns the saved entries, or an empty list when nothing was
// saved yet.
func (d *DB) LoadEntries(ctx context.Context) ([]domain.Entry, error) {
	value, err := d.get(ctx, keyEntries)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	var entries []domain.Entry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		return nil, fmt.Errorf("corrupt entries snapshot: %w", err)
	}
	return entries, nil
}

// SaveGoal upserts the daily goal.
func (d *DB) SaveGoal(ctx context.Context, goal int) error {
	return d.put(ctx, keyDailyGoal, strconv.Itoa(goal))
}

// SaveEntries upserts the whole entry list.
func (d *DB) SaveEntries(ctx context.Context, entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries snapshot: %w", err)
	}
	return d.put(ctx, keyEntries, string(data))
}

func (d *DB) get(ctx context.Context, key string) (string, error) {
	var value string
	err := d.sql.QueryRowContext(ctx,
		`SELECT value FROM snapshot WHERE key = ?;`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (d *DB) put(ctx context.Context, key, value string) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO snapshot(key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		key, value, time.Now().UTC(),
	)
	return err
}

// --- UserRepository ---

// GetByUsername retrieves a user by username, nil if not found.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?;`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by ID, nil if not found.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?;`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create creates a new user.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	now := time.Now().UTC()
	res, err := d.sql.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?);`,
		username, passwordHash, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count)
	return count, err
}

// --- SessionRepository ---

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?);`,
		token, userID, expiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

// GetByToken retrieves a session by token, nil if not found.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		`SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?;`,
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

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?;`, token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?;`, time.Now().UTC())
	return err
}
