package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"caltrack/internal/domain"
)

var (
	// ErrInvalidCredentials indicates a wrong username or password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserExists indicates the initial user has already been created.
	ErrUserExists = errors.New("a user already exists")
)

const sessionTTL = 24 * time.Hour

// AuthService handles login, logout and session validation for the
// tracker's single owner.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
}

// NewAuthService creates an AuthService backed by the given repositories.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login authenticates a user and creates a session, returning its token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.createSession(ctx, user.ID)
}

// LoginWithUser creates a session for an externally authenticated username
// (SSO callback), creating the account on first sight.
func (s *AuthService) LoginWithUser(ctx context.Context, username string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		// SSO users carry no local password.
		user, err = s.users.Create(ctx, username, "")
		if err != nil {
			return "", err
		}
	}
	return s.createSession(ctx, user.ID)
}

// ValidateForwardAuth resolves a reverse-proxy authenticated username
// (Remote-User header), creating the account on first sight.
func (s *AuthService) ValidateForwardAuth(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.users.Create(ctx, username, "")
		if err != nil {
			return nil, err
		}
	}
	return user, nil
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession resolves a session token to its user.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil || user == nil {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// CreateInitialUser creates the first account. It refuses to run once any
// user exists.
func (s *AuthService) CreateInitialUser(ctx context.Context, username, password string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, username, string(hash))
	return err
}

func (s *AuthService) createSession(ctx context.Context, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(ctx, userID, token, time.Now().Add(sessionTTL)); err != nil {
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
