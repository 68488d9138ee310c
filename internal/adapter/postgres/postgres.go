// Package postgres implements the durable snapshot store and auth
// repositories using PostgreSQL, for deployments that already run one.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/lib/pq"

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

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

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

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS snapshot (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
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
		"SELECT value FROM snapshot WHERE key = $1", key,
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
		"INSERT INTO snapshot(key, value, updated_at) VALUES($1, $2, $3) ON CONFLICT(key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at",
		key, value, time.Now().UTC(),
	)
	return err
}
