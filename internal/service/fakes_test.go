package service

import (
	"fmt"
	"sync"
	"time"

	"wordarena/internal/models"
)

// fakeGameStore is an in-memory SessionStore + GuessStore that mimics the
// SQL repository: reads return copies, guess recording enforces the unique
// (session, sequence) constraint.
type fakeGameStore struct {
	mu         sync.Mutex
	sessions   map[int64]*models.GameSession
	guesses    map[int64][]models.Guess
	nextID     int64
	countDelay time.Duration
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{
		sessions: make(map[int64]*models.GameSession),
		guesses:  make(map[int64][]models.Guess),
	}
}

func (f *fakeGameStore) CountSessionsForDay(userID int64, day string) (int, error) {
	f.mu.Lock()
	count := 0
	for _, s := range f.sessions {
		if s.UserID == userID && s.SessionDate == day {
			count++
		}
	}
	f.mu.Unlock()

	// Widen the check-then-create window for the concurrency tests
	if f.countDelay > 0 {
		time.Sleep(f.countDelay)
	}
	return count, nil
}

func (f *fakeGameStore) CreateSession(userID, wordID int64, day string) (*models.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	session := &models.GameSession{
		ID:          f.nextID,
		UserID:      userID,
		WordID:      wordID,
		TargetWord:  fmt.Sprintf("WORD%d", wordID),
		SessionDate: day,
		CreatedAt:   time.Now(),
	}
	f.sessions[session.ID] = session

	copied := *session
	return &copied, nil
}

func (f *fakeGameStore) addSession(session *models.GameSession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	session.ID = f.nextID
	f.sessions[session.ID] = session
}

func (f *fakeGameStore) GetActiveSession(userID int64, day string) (*models.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var latest *models.GameSession
	for _, s := range f.sessions {
		if s.UserID != userID || s.SessionDate != day || s.IsWon || s.GuessesCount >= models.MaxGuesses {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) || (s.CreatedAt.Equal(latest.CreatedAt) && s.ID > latest.ID) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeGameStore) RecordGuess(sessionID int64, guessedWord string, sequence int, won bool) (*models.Guess, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %d not found", sessionID)
	}
	for _, g := range f.guesses[sessionID] {
		if g.Sequence == sequence {
			return nil, fmt.Errorf("duplicate sequence %d for session %d", sequence, sessionID)
		}
	}

	guess := models.Guess{
		ID:          int64(len(f.guesses[sessionID]) + 1),
		SessionID:   sessionID,
		GuessedWord: guessedWord,
		Sequence:    sequence,
		CreatedAt:   time.Now(),
	}
	f.guesses[sessionID] = append(f.guesses[sessionID], guess)
	session.GuessesCount = sequence
	session.IsWon = won

	copied := guess
	return &copied, nil
}

// fakeWordSource always returns the same word
type fakeWordSource struct {
	word models.Word
}

func (f *fakeWordSource) PickWord() (*models.Word, error) {
	copied := f.word
	return &copied, nil
}

// fakeWordPool backs RandomWordSource tests
type fakeWordPool struct {
	mu    sync.Mutex
	words []models.Word
}

func (f *fakeWordPool) CountWords() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.words), nil
}

func (f *fakeWordPool) WordAt(offset int) (*models.Word, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset < 0 || offset >= len(f.words) {
		return nil, nil
	}
	copied := f.words[offset]
	return &copied, nil
}

func (f *fakeWordPool) SeedDefaultWords() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.words) > 0 {
		return 0, nil
	}
	defaults := []string{"APPLE", "BRAVE", "CHIEF"}
	for i, w := range defaults {
		f.words = append(f.words, models.Word{ID: int64(i + 1), Text: w})
	}
	return len(defaults), nil
}

// fakeReportStore returns canned aggregates
type fakeReportStore struct {
	summary *models.DailySummary
	history map[int64][]models.UserDayReport
}

func (f *fakeReportStore) DailySummary(day string) (*models.DailySummary, error) {
	if f.summary != nil {
		return f.summary, nil
	}
	return &models.DailySummary{Date: day}, nil
}

func (f *fakeReportStore) UserHistory(userID int64) ([]models.UserDayReport, error) {
	return f.history[userID], nil
}

// fakeUserFinder looks up canned users by username
type fakeUserFinder struct {
	users map[string]*models.User
}

func (f *fakeUserFinder) GetUserByUsername(username string) (*models.User, error) {
	return f.users[username], nil
}
