// Package memory implements the durable-store and auth repositories in
// process memory, for development and testing.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"caltrack/internal/domain"
)

// DB implements an in-memory stand-in for durable storage.
type DB struct {
	mu      sync.Mutex
	goal    int
	entries []domain.Entry

	users         []*domain.User
	sessions      map[string]*domain.Session
	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.Persistence = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- Persistence ---

// LoadGoal returns the saved goal, or 0 when nothing was saved yet.
func (db *DB) LoadGoal(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.goal, nil
}

// LoadEntries returns a copy of the saved entries.
func (db *DB) LoadEntries(ctx context.Context) ([]domain.Entry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]domain.Entry, len(db.entries))
	copy(out, db.entries)
	return out, nil
}

// SaveGoal stores the goal.
func (db *DB) SaveGoal(ctx context.Context, goal int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.goal = goal
	return nil
}

// SaveEntries stores a copy of the entries.
func (db *DB) SaveEntries(ctx context.Context, entries []domain.Entry) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.entries = make([]domain.Entry, len(entries))
	copy(db.entries, entries)
	return nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username, nil if not found.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID, nil if not found.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}
	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence on top of DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps the DB as a SessionRepository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token, nil if not found.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if v.Expired(now) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
