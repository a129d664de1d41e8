package models

import "time"

const (
	// WordLength is the fixed length of every word in the pool and every guess
	WordLength = 5

	// MaxGuesses is the number of guesses allowed per game session
	MaxGuesses = 5

	// MaxSessionsPerDay is the hard cap on sessions a user may start per calendar day
	MaxSessionsPerDay = 3
)

// Mark is the per-letter feedback for a guess. The numeric values are the
// wire format the game client expects: 0 absent, 1 present, 2 correct.
type Mark int

const (
	MarkAbsent  Mark = 0
	MarkPresent Mark = 1
	MarkCorrect Mark = 2
)

// Word is an entry in the word pool
type Word struct {
	ID        int64
	Text      string
	CreatedAt time.Time
}

// GameSession represents one game attempt for one user on one calendar day.
// TargetWord is denormalized from the word pool on load.
type GameSession struct {
	ID           int64
	UserID       int64
	WordID       int64
	TargetWord   string
	SessionDate  string
	IsWon        bool
	GuessesCount int
	CreatedAt    time.Time
}

// IsTerminal reports whether the session accepts no further guesses:
// either it was won or all guesses are spent.
func (s *GameSession) IsTerminal() bool {
	return s.IsWon || s.GuessesCount >= MaxGuesses
}

// GuessesLeft returns the number of guesses remaining, never negative.
func (s *GameSession) GuessesLeft() int {
	left := MaxGuesses - s.GuessesCount
	if left < 0 {
		return 0
	}
	return left
}

// Guess is one submitted attempt within a session. Sequence is 1-based and
// contiguous within the session; guesses are append-only.
type Guess struct {
	ID          int64
	SessionID   int64
	GuessedWord string
	Sequence    int
	CreatedAt   time.Time
}

// DayKey formats a timestamp as the calendar-day key used for quota scoping
// and reports. Every request computes this once and threads it through.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
