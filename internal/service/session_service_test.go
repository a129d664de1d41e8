package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"wordarena/internal/models"
)

func TestStartSessionCreatesFreshSession(t *testing.T) {
	store := newFakeGameStore()
	svc := NewSessionService(store, &fakeWordSource{word: models.Word{ID: 1, Text: "APPLE"}})

	session, err := svc.StartSession(7, time.Now())
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if session.GuessesCount != 0 {
		t.Errorf("new session GuessesCount = %d, want 0", session.GuessesCount)
	}
	if session.IsWon {
		t.Error("new session should not be won")
	}
	if session.UserID != 7 {
		t.Errorf("session UserID = %d, want 7", session.UserID)
	}
}

func TestStartSessionEnforcesDailyQuota(t *testing.T) {
	store := newFakeGameStore()
	svc := NewSessionService(store, &fakeWordSource{word: models.Word{ID: 1, Text: "APPLE"}})
	today := time.Now()

	for i := 0; i < models.MaxSessionsPerDay; i++ {
		if _, err := svc.StartSession(1, today); err != nil {
			t.Fatalf("StartSession() #%d error = %v", i+1, err)
		}
	}

	_, err := svc.StartSession(1, today)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("4th StartSession() error = %v, want ErrQuotaExceeded", err)
	}
}

func TestStartSessionQuotaIsPerDay(t *testing.T) {
	store := newFakeGameStore()
	svc := NewSessionService(store, &fakeWordSource{word: models.Word{ID: 1, Text: "APPLE"}})

	yesterday := time.Now().AddDate(0, 0, -1)
	today := time.Now()

	for i := 0; i < models.MaxSessionsPerDay; i++ {
		if _, err := svc.StartSession(1, yesterday); err != nil {
			t.Fatalf("StartSession() on yesterday error = %v", err)
		}
	}

	if _, err := svc.StartSession(1, today); err != nil {
		t.Errorf("StartSession() today should not count yesterday's sessions: %v", err)
	}
}

func TestStartSessionQuotaIsPerUser(t *testing.T) {
	store := newFakeGameStore()
	svc := NewSessionService(store, &fakeWordSource{word: models.Word{ID: 1, Text: "APPLE"}})
	today := time.Now()

	for i := 0; i < models.MaxSessionsPerDay; i++ {
		if _, err := svc.StartSession(1, today); err != nil {
			t.Fatalf("StartSession() for user 1 error = %v", err)
		}
	}

	if _, err := svc.StartSession(2, today); err != nil {
		t.Errorf("StartSession() for a different user should succeed: %v", err)
	}
}

func TestStartSessionConcurrentLastSlot(t *testing.T) {
	store := newFakeGameStore()
	store.countDelay = 5 * time.Millisecond
	svc := NewSessionService(store, &fakeWordSource{word: models.Word{ID: 1, Text: "APPLE"}})
	today := time.Now()

	// Fill all but one slot
	for i := 0; i < models.MaxSessionsPerDay-1; i++ {
		if _, err := svc.StartSession(1, today); err != nil {
			t.Fatalf("StartSession() error = %v", err)
		}
	}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StartSession(1, today)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, quotaErrs := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrQuotaExceeded):
			quotaErrs++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || quotaErrs != 1 {
		t.Errorf("concurrent StartSession: got %d successes and %d quota errors, want exactly 1 of each", successes, quotaErrs)
	}
}

func TestResolveActiveSession(t *testing.T) {
	store := newFakeGameStore()
	svc := NewSessionService(store, &fakeWordSource{word: models.Word{ID: 1, Text: "APPLE"}})
	today := time.Now()
	day := models.DayKey(today)

	t.Run("no session at all", func(t *testing.T) {
		_, err := svc.ResolveActiveSession(9, today)
		if !errors.Is(err, ErrNoActiveSession) {
			t.Errorf("error = %v, want ErrNoActiveSession", err)
		}
	})

	t.Run("returns most recent non-terminal session", func(t *testing.T) {
		older := &models.GameSession{UserID: 9, SessionDate: day, TargetWord: "APPLE", CreatedAt: time.Now().Add(-time.Hour)}
		newer := &models.GameSession{UserID: 9, SessionDate: day, TargetWord: "STONE", CreatedAt: time.Now()}
		store.addSession(older)
		store.addSession(newer)

		session, err := svc.ResolveActiveSession(9, today)
		if err != nil {
			t.Fatalf("ResolveActiveSession() error = %v", err)
		}
		if session.ID != newer.ID {
			t.Errorf("resolved session ID = %d, want newest %d", session.ID, newer.ID)
		}
	})

	t.Run("skips won and exhausted sessions", func(t *testing.T) {
		won := &models.GameSession{UserID: 10, SessionDate: day, IsWon: true, CreatedAt: time.Now()}
		exhausted := &models.GameSession{UserID: 10, SessionDate: day, GuessesCount: models.MaxGuesses, CreatedAt: time.Now()}
		store.addSession(won)
		store.addSession(exhausted)

		_, err := svc.ResolveActiveSession(10, today)
		if !errors.Is(err, ErrNoActiveSession) {
			t.Errorf("error = %v, want ErrNoActiveSession when all sessions are terminal", err)
		}
	})
}
