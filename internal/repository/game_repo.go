package repository

import (
	"database/sql"
	"fmt"

	"wordarena/internal/database"
	"wordarena/internal/models"
)

// GameRepository handles game session and guess database operations
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

const sessionColumns = `
	s.id, s.user_id, s.word_id, w.word, s.session_date, s.is_won, s.guesses_count, s.created_at
`

func scanSession(row *sql.Row) (*models.GameSession, error) {
	session := &models.GameSession{}
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.WordID,
		&session.TargetWord,
		&session.SessionDate,
		&session.IsWon,
		&session.GuessesCount,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CountSessionsForDay counts the sessions a user holds on a calendar day
func (r *GameRepository) CountSessionsForDay(userID int64, day string) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM game_sessions WHERE user_id = ? AND session_date = ?",
		userID, day,
	).Scan(&count)
	return count, err
}

// CreateSession creates a new game session with no guesses and an undecided outcome
func (r *GameRepository) CreateSession(userID, wordID int64, day string) (*models.GameSession, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO game_sessions (user_id, word_id, session_date) VALUES (?, ?, ?)",
		userID, wordID, day,
	)
	if err != nil {
		return nil, err
	}
	return r.GetSessionByID(id)
}

// GetSessionByID retrieves a session by ID, with its target word joined in
func (r *GameRepository) GetSessionByID(sessionID int64) (*models.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions s
		JOIN words w ON w.id = s.word_id
		WHERE s.id = ?
	`
	return scanSession(r.db.QueryRow(query, sessionID))
}

// GetActiveSession returns the most recently created non-terminal session for
// the user on the given day, or nil if there is none. Recency is determined
// by creation time; the ID only breaks same-timestamp ties.
func (r *GameRepository) GetActiveSession(userID int64, day string) (*models.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions s
		JOIN words w ON w.id = s.word_id
		WHERE s.user_id = ? AND s.session_date = ?
		  AND s.is_won = ` + r.db.Dialect.BoolValue(false) + `
		  AND s.guesses_count < ?
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT 1
	`
	return scanSession(r.db.QueryRow(query, userID, day, models.MaxGuesses))
}

// RecordGuess appends a guess to a session and updates the session's counter
// and win flag in a single transaction, so the counter can never drift from
// the recorded guesses.
func (r *GameRepository) RecordGuess(sessionID int64, guessedWord string, sequence int, won bool) (*models.Guess, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	guessID, err := tx.ExecReturningID(
		"INSERT INTO guesses (session_id, guessed_word, sequence) VALUES (?, ?, ?)",
		sessionID, guessedWord, sequence,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert guess: %w", err)
	}

	_, err = tx.Exec(
		"UPDATE game_sessions SET guesses_count = ?, is_won = ? WHERE id = ?",
		sequence, won, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit guess: %w", err)
	}

	guess := &models.Guess{}
	err = r.db.QueryRow(
		"SELECT id, session_id, guessed_word, sequence, created_at FROM guesses WHERE id = ?",
		guessID,
	).Scan(&guess.ID, &guess.SessionID, &guess.GuessedWord, &guess.Sequence, &guess.CreatedAt)
	if err != nil {
		return nil, err
	}
	return guess, nil
}

// GetSessionGuesses retrieves all guesses for a session in sequence order
func (r *GameRepository) GetSessionGuesses(sessionID int64) ([]models.Guess, error) {
	rows, err := r.db.Query(
		"SELECT id, session_id, guessed_word, sequence, created_at FROM guesses WHERE session_id = ? ORDER BY sequence ASC",
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guesses []models.Guess
	for rows.Next() {
		var guess models.Guess
		err := rows.Scan(&guess.ID, &guess.SessionID, &guess.GuessedWord, &guess.Sequence, &guess.CreatedAt)
		if err != nil {
			return nil, err
		}
		guesses = append(guesses, guess)
	}
	return guesses, rows.Err()
}

// GetUserSessions retrieves all sessions for a user, most recent first.
// Used by the export tool.
func (r *GameRepository) GetUserSessions(userID int64) ([]models.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions s
		JOIN words w ON w.id = s.word_id
		WHERE s.user_id = ?
		ORDER BY s.created_at DESC, s.id DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.GameSession
	for rows.Next() {
		var s models.GameSession
		err := rows.Scan(&s.ID, &s.UserID, &s.WordID, &s.TargetWord, &s.SessionDate, &s.IsWon, &s.GuessesCount, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
