package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"wordarena/internal/models"
	"wordarena/internal/repository"
)

// ExportData is the complete game dataset as written by the export tool
type ExportData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Words      []WordExport    `json:"words"`
	Users      []UserExport    `json:"users"`
	Sessions   []SessionExport `json:"sessions"`
}

// WordExport represents a word pool entry for export
type WordExport struct {
	ID        int64     `json:"id"`
	Word      string    `json:"word"`
	CreatedAt time.Time `json:"created_at"`
}

// UserExport represents a user record for export. Password hashes are
// deliberately omitted.
type UserExport struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionExport represents a game session with its guesses nested
type SessionExport struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"user_id"`
	TargetWord   string        `json:"target_word"`
	SessionDate  string        `json:"session_date"`
	IsWon        bool          `json:"is_won"`
	GuessesCount int           `json:"guesses_count"`
	CreatedAt    time.Time     `json:"created_at"`
	Guesses      []GuessExport `json:"guesses"`
}

// GuessExport represents one recorded guess
type GuessExport struct {
	Sequence    int       `json:"sequence"`
	GuessedWord string    `json:"guessed_word"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExportService writes the full game dataset as JSON
type ExportService struct {
	userRepo *repository.UserRepository
	wordRepo *repository.WordRepository
	gameRepo *repository.GameRepository
}

// NewExportService creates a new export service
func NewExportService(userRepo *repository.UserRepository, wordRepo *repository.WordRepository, gameRepo *repository.GameRepository) *ExportService {
	return &ExportService{
		userRepo: userRepo,
		wordRepo: wordRepo,
		gameRepo: gameRepo,
	}
}

// Export writes the dataset to w as indented JSON
func (s *ExportService) Export(w io.Writer) error {
	data := ExportData{
		Version:    "1",
		ExportedAt: time.Now().UTC(),
	}

	words, err := s.wordRepo.AllWords()
	if err != nil {
		return fmt.Errorf("failed to export words: %w", err)
	}
	for _, word := range words {
		data.Words = append(data.Words, WordExport{
			ID:        word.ID,
			Word:      word.Text,
			CreatedAt: word.CreatedAt,
		})
	}

	users, err := s.userRepo.AllUsers()
	if err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	for _, user := range users {
		data.Users = append(data.Users, UserExport{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			IsAdmin:   user.IsAdmin,
			CreatedAt: user.CreatedAt,
		})

		sessions, err := s.gameRepo.GetUserSessions(user.ID)
		if err != nil {
			return fmt.Errorf("failed to export sessions for user %d: %w", user.ID, err)
		}
		for _, session := range sessions {
			sessionExport, err := s.exportSession(session)
			if err != nil {
				return err
			}
			data.Sessions = append(data.Sessions, sessionExport)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (s *ExportService) exportSession(session models.GameSession) (SessionExport, error) {
	out := SessionExport{
		ID:           session.ID,
		UserID:       session.UserID,
		TargetWord:   session.TargetWord,
		SessionDate:  session.SessionDate,
		IsWon:        session.IsWon,
		GuessesCount: session.GuessesCount,
		CreatedAt:    session.CreatedAt,
	}

	guesses, err := s.gameRepo.GetSessionGuesses(session.ID)
	if err != nil {
		return out, fmt.Errorf("failed to export guesses for session %d: %w", session.ID, err)
	}
	for _, guess := range guesses {
		out.Guesses = append(out.Guesses, GuessExport{
			Sequence:    guess.Sequence,
			GuessedWord: guess.GuessedWord,
			CreatedAt:   guess.CreatedAt,
		})
	}
	return out, nil
}
