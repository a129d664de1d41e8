package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wordarena/internal/models"
	"wordarena/internal/repository"
	"wordarena/internal/security"
	"wordarena/internal/validation"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrRegistrationClosed = errors.New("registration is currently closed")
)

// RegistrationGate controls whether new accounts may be created
type RegistrationGate interface {
	IsRegistrationOpen() bool
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	tokens          *security.TokenManager
	gate            RegistrationGate
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service. A nil gate leaves
// registration open.
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenManager, gate RegistrationGate, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		tokens:          tokens,
		gate:            gate,
		sessionDuration: sessionDuration,
	}
}

// Register creates a new player account
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if s.gate != nil && !s.gate.IsRegistrationOpen() {
		return nil, ErrRegistrationClosed
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(username, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and creates a cookie session plus an API token
func (s *AuthService) Login(username, password string) (*models.AuthSession, *models.User, string, error) {
	user, err := s.userRepo.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, "", ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, "", ErrInvalidCredentials
	}

	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(sessionID, user.ID, expiresAt)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return session, user, token, nil
}

// OAuthLogin signs in a user authenticated by an external provider, creating
// the account on first login. Matching is by verified email address.
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.AuthSession, *models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, "", err
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		username, err := s.pickUsername(email)
		if err != nil {
			return nil, nil, "", err
		}

		// OAuth accounts have no usable password
		placeholder, err := security.HashPassword(security.GenerateSessionID())
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to create account: %w", err)
		}

		user, err = s.userRepo.CreateUser(username, email, placeholder)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to create user: %w", err)
		}
	}

	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(sessionID, user.ID, expiresAt)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return session, user, token, nil
}

// pickUsername derives a free username from an email local part
func (s *AuthService) pickUsername(email string) (string, error) {
	base := strings.SplitN(email, "@", 2)[0]
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return -1
	}, base)
	if len(base) < 3 {
		base = "player"
	}
	if len(base) > 24 {
		base = base[:24]
	}

	candidate := base
	for i := 0; i < 100; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s%d", base, i)
		}
		existing, err := s.userRepo.GetUserByUsername(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", errors.New("could not find a free username")
}

// ValidateSession checks if a cookie session is valid and returns its user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// ValidateToken checks an API bearer token and returns its user
func (s *AuthService) ValidateToken(token string) (*models.User, error) {
	userID, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// Logout invalidates a cookie session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired cookie sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.userRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}
