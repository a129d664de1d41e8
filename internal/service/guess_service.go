package service

import (
	"errors"
	"fmt"
	"time"

	"wordarena/internal/models"
	"wordarena/internal/validation"
)

var (
	// ErrSessionExhausted guards against racing a terminal session.
	// ResolveActiveSession already excludes terminal sessions; this is the
	// second barrier.
	ErrSessionExhausted = errors.New("no more guesses allowed for this session")
)

// GuessStore is the persistence capability the guess service needs
type GuessStore interface {
	RecordGuess(sessionID int64, guessedWord string, sequence int, won bool) (*models.Guess, error)
}

// SessionResolver resolves the caller's current active session
type SessionResolver interface {
	ResolveActiveSession(userID int64, today time.Time) (*models.GameSession, error)
}

// GuessResult is the outcome of one guess submission. TargetWord is empty
// unless this guess made the session terminal.
type GuessResult struct {
	Colors      []models.Mark
	IsCorrect   bool
	GuessesLeft int
	TargetWord  string
}

// GuessService orchestrates one guess submission: validate, resolve the
// active session, score, record, and shape the response.
type GuessService struct {
	sessions SessionResolver
	guesses  GuessStore
	perUser  *keyedMutex
}

// NewGuessService creates a new guess service
func NewGuessService(sessions SessionResolver, guesses GuessStore) *GuessService {
	return &GuessService{
		sessions: sessions,
		guesses:  guesses,
		perUser:  newKeyedMutex(),
	}
}

// SubmitGuess processes one guess for the user's active session on the given
// day. Submissions are serialized per user, so sequence numbers within a
// session are contiguous and counter updates are never lost. The guess and
// the session update are committed as one unit by the store.
func (s *GuessService) SubmitGuess(userID int64, rawGuess string, today time.Time) (*GuessResult, error) {
	guessedWord := validation.NormalizeGuess(rawGuess)
	if err := validation.ValidateGuessWord(guessedWord); err != nil {
		return nil, err
	}

	lock := s.perUser.get(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessions.ResolveActiveSession(userID, today)
	if err != nil {
		return nil, err
	}

	if session.GuessesCount >= models.MaxGuesses {
		return nil, ErrSessionExhausted
	}

	colors := EvaluateGuess(session.TargetWord, guessedWord)
	won := guessedWord == session.TargetWord
	sequence := session.GuessesCount + 1

	if _, err := s.guesses.RecordGuess(session.ID, guessedWord, sequence, won); err != nil {
		return nil, fmt.Errorf("failed to record guess: %w", err)
	}

	session.GuessesCount = sequence
	session.IsWon = won

	result := &GuessResult{
		Colors:      colors,
		IsCorrect:   won,
		GuessesLeft: session.GuessesLeft(),
	}

	// The secret is revealed only once the session is terminal
	if session.IsTerminal() {
		result.TargetWord = session.TargetWord
	}

	return result, nil
}
