package service

import (
	"errors"
	"fmt"
	"time"

	"wordarena/internal/models"
)

var (
	// ErrQuotaExceeded is returned when a user has reached the daily session cap
	ErrQuotaExceeded = errors.New("daily session limit reached")

	// ErrNoActiveSession is returned when a user has no session to play today
	ErrNoActiveSession = errors.New("no active session")
)

// SessionStore is the persistence capability the session service needs
type SessionStore interface {
	CountSessionsForDay(userID int64, day string) (int, error)
	CreateSession(userID, wordID int64, day string) (*models.GameSession, error)
	GetActiveSession(userID int64, day string) (*models.GameSession, error)
}

// SessionService owns the session lifecycle rules: the daily quota and
// active-session resolution.
type SessionService struct {
	sessions SessionStore
	words    WordSource
	perUser  *keyedMutex
}

// NewSessionService creates a new session service
func NewSessionService(sessions SessionStore, words WordSource) *SessionService {
	return &SessionService{
		sessions: sessions,
		words:    words,
		perUser:  newKeyedMutex(),
	}
}

// StartSession starts a new game session for the user on the given day.
// The quota check and the insert run under a per-user lock so that two
// concurrent calls cannot both claim the last remaining slot.
func (s *SessionService) StartSession(userID int64, today time.Time) (*models.GameSession, error) {
	day := models.DayKey(today)

	lock := s.perUser.get(userID)
	lock.Lock()
	defer lock.Unlock()

	count, err := s.sessions.CountSessionsForDay(userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	if count >= models.MaxSessionsPerDay {
		return nil, ErrQuotaExceeded
	}

	word, err := s.words.PickWord()
	if err != nil {
		return nil, fmt.Errorf("failed to pick word: %w", err)
	}

	session, err := s.sessions.CreateSession(userID, word.ID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ResolveActiveSession returns the user's most recently created non-terminal
// session for the given day, or ErrNoActiveSession.
func (s *SessionService) ResolveActiveSession(userID int64, today time.Time) (*models.GameSession, error) {
	session, err := s.sessions.GetActiveSession(userID, models.DayKey(today))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}
