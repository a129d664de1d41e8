package service

import (
	"errors"
	"testing"
	"time"

	"wordarena/internal/models"
)

func TestDailySummaryRequiresAdmin(t *testing.T) {
	svc := NewReportService(&fakeReportStore{}, &fakeUserFinder{})

	tests := []struct {
		name    string
		caller  *models.User
		wantErr error
	}{
		{"nil caller", nil, ErrForbidden},
		{"regular user", &models.User{ID: 1, Username: "alice"}, ErrForbidden},
		{"admin", &models.User{ID: 2, Username: "root", IsAdmin: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.DailySummary(tt.caller, time.Now())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DailySummary() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDailySummaryReturnsAggregates(t *testing.T) {
	day := models.DayKey(time.Now())
	store := &fakeReportStore{summary: &models.DailySummary{Date: day, UsersPlayed: 4, CorrectGuesses: 2}}
	svc := NewReportService(store, &fakeUserFinder{})

	summary, err := svc.DailySummary(&models.User{ID: 1, IsAdmin: true}, time.Now())
	if err != nil {
		t.Fatalf("DailySummary() error = %v", err)
	}
	if summary.UsersPlayed != 4 || summary.CorrectGuesses != 2 {
		t.Errorf("summary = %+v, want 4 players and 2 wins", summary)
	}
}

func TestUserHistoryAccessControl(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice"}
	admin := &models.User{ID: 2, Username: "root", IsAdmin: true}

	store := &fakeReportStore{history: map[int64][]models.UserDayReport{
		1: {{SessionDate: "2026-09-01", WordsTried: 3, Correct: 1}},
	}}
	users := &fakeUserFinder{users: map[string]*models.User{"alice": alice}}
	svc := NewReportService(store, users)

	t.Run("self access allowed", func(t *testing.T) {
		report, err := svc.UserHistory(alice, "alice")
		if err != nil {
			t.Fatalf("UserHistory() error = %v", err)
		}
		if len(report) != 1 || report[0].WordsTried != 3 {
			t.Errorf("report = %+v, want alice's single day", report)
		}
	})

	t.Run("admin may query anyone", func(t *testing.T) {
		report, err := svc.UserHistory(admin, "alice")
		if err != nil {
			t.Fatalf("UserHistory() error = %v", err)
		}
		if len(report) != 1 {
			t.Errorf("report length = %d, want 1", len(report))
		}
	})

	t.Run("non-admin cannot query others", func(t *testing.T) {
		_, err := svc.UserHistory(alice, "root")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UserHistory(admin, "nobody")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("error = %v, want ErrUserNotFound", err)
		}
	})
}
