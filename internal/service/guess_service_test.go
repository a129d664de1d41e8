package service

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"wordarena/internal/models"
	"wordarena/internal/validation"
)

func newGameUnderTest(t *testing.T, target string) (*fakeGameStore, *SessionService, *GuessService, *models.GameSession) {
	t.Helper()

	store := newFakeGameStore()
	sessions := NewSessionService(store, &fakeWordSource{word: models.Word{ID: 1, Text: target}})
	guesses := NewGuessService(sessions, store)

	session := &models.GameSession{
		UserID:      1,
		SessionDate: models.DayKey(time.Now()),
		TargetWord:  target,
		CreatedAt:   time.Now(),
	}
	store.addSession(session)
	return store, sessions, guesses, session
}

func TestSubmitGuessRejectsInvalidInput(t *testing.T) {
	_, _, guesses, _ := newGameUnderTest(t, "APPLE")

	invalid := []string{"", "TOOLONGWORD", "AB1DE", "CAT"}
	for _, raw := range invalid {
		_, err := guesses.SubmitGuess(1, raw, time.Now())
		var vErr validation.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("SubmitGuess(%q) error = %v, want a validation error", raw, err)
		}
	}
}

func TestSubmitGuessWithoutActiveSession(t *testing.T) {
	store := newFakeGameStore()
	sessions := NewSessionService(store, &fakeWordSource{word: models.Word{ID: 1, Text: "APPLE"}})
	guesses := NewGuessService(sessions, store)

	_, err := guesses.SubmitGuess(1, "APPLE", time.Now())
	if !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("error = %v, want ErrNoActiveSession", err)
	}
}

func TestSubmitGuessWinningWord(t *testing.T) {
	store, _, guesses, session := newGameUnderTest(t, "APPLE")

	result, err := guesses.SubmitGuess(1, "apple", time.Now())
	if err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}

	if !result.IsCorrect {
		t.Error("IsCorrect should be true for the target word")
	}
	if result.GuessesLeft != 4 {
		t.Errorf("GuessesLeft = %d, want 4", result.GuessesLeft)
	}
	if result.TargetWord != "APPLE" {
		t.Errorf("TargetWord = %q, want revealed APPLE on a win", result.TargetWord)
	}
	for i, mark := range result.Colors {
		if mark != models.MarkCorrect {
			t.Errorf("Colors[%d] = %d, want Correct", i, mark)
		}
	}

	stored := store.sessions[session.ID]
	if !stored.IsWon || stored.GuessesCount != 1 {
		t.Errorf("stored session = won %v count %d, want won with 1 guess", stored.IsWon, stored.GuessesCount)
	}
}

func TestSubmitGuessWithholdsTargetMidGame(t *testing.T) {
	_, _, guesses, _ := newGameUnderTest(t, "APPLE")

	result, err := guesses.SubmitGuess(1, "STONE", time.Now())
	if err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if result.TargetWord != "" {
		t.Errorf("TargetWord = %q, want empty while the session is live", result.TargetWord)
	}
	if result.IsCorrect {
		t.Error("IsCorrect should be false for a wrong word")
	}
	if result.GuessesLeft != 4 {
		t.Errorf("GuessesLeft = %d, want 4", result.GuessesLeft)
	}
}

func TestSubmitGuessExhaustion(t *testing.T) {
	store, _, guesses, session := newGameUnderTest(t, "APPLE")

	var last *GuessResult
	for i := 0; i < models.MaxGuesses; i++ {
		result, err := guesses.SubmitGuess(1, "STONE", time.Now())
		if err != nil {
			t.Fatalf("SubmitGuess() #%d error = %v", i+1, err)
		}
		last = result
	}

	// Target revealed on the final non-winning guess
	if last.GuessesLeft != 0 {
		t.Errorf("GuessesLeft after 5 guesses = %d, want 0", last.GuessesLeft)
	}
	if last.TargetWord != "APPLE" {
		t.Errorf("TargetWord = %q, want APPLE revealed on exhaustion", last.TargetWord)
	}

	// The 6th guess finds no active session and records nothing
	_, err := guesses.SubmitGuess(1, "STONE", time.Now())
	if !errors.Is(err, ErrNoActiveSession) && !errors.Is(err, ErrSessionExhausted) {
		t.Errorf("6th SubmitGuess() error = %v, want exhaustion", err)
	}
	if got := len(store.guesses[session.ID]); got != models.MaxGuesses {
		t.Errorf("recorded guesses = %d, want %d", got, models.MaxGuesses)
	}
}

func TestSubmitGuessSequenceIntegrityUnderConcurrency(t *testing.T) {
	store, _, guesses, session := newGameUnderTest(t, "APPLE")

	const attempts = 10
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = guesses.SubmitGuess(1, "STONE", time.Now())
		}()
	}
	wg.Wait()

	recorded := store.guesses[session.ID]
	if len(recorded) != models.MaxGuesses {
		t.Fatalf("recorded guesses = %d, want exactly %d", len(recorded), models.MaxGuesses)
	}

	sequences := make([]int, 0, len(recorded))
	for _, g := range recorded {
		sequences = append(sequences, g.Sequence)
	}
	sort.Ints(sequences)
	for i, seq := range sequences {
		if seq != i+1 {
			t.Fatalf("sequences = %v, want contiguous 1..%d", sequences, models.MaxGuesses)
		}
	}

	if store.sessions[session.ID].GuessesCount != models.MaxGuesses {
		t.Errorf("session GuessesCount = %d, want %d", store.sessions[session.ID].GuessesCount, models.MaxGuesses)
	}
}

func TestSubmitGuessExhaustedGuard(t *testing.T) {
	// Hand the guess service a resolver that returns a terminal session, as
	// a race would. The defensive guard must refuse it.
	store := newFakeGameStore()
	resolver := staleResolver{session: &models.GameSession{
		ID:           99,
		UserID:       1,
		TargetWord:   "APPLE",
		GuessesCount: models.MaxGuesses,
	}}
	guesses := NewGuessService(resolver, store)

	_, err := guesses.SubmitGuess(1, "STONE", time.Now())
	if !errors.Is(err, ErrSessionExhausted) {
		t.Errorf("error = %v, want ErrSessionExhausted", err)
	}
}

type staleResolver struct {
	session *models.GameSession
}

func (r staleResolver) ResolveActiveSession(userID int64, today time.Time) (*models.GameSession, error) {
	copied := *r.session
	return &copied, nil
}
