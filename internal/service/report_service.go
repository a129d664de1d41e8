package service

import (
	"errors"
	"fmt"
	"time"

	"wordarena/internal/models"
)

var (
	// ErrForbidden is returned when a caller lacks the administrator capability
	ErrForbidden = errors.New("forbidden")

	// ErrUserNotFound is returned when a report targets an unknown user
	ErrUserNotFound = errors.New("user not found")
)

// ReportStore is the read-only aggregation capability the report service needs
type ReportStore interface {
	DailySummary(day string) (*models.DailySummary, error)
	UserHistory(userID int64) ([]models.UserDayReport, error)
}

// UserFinder resolves usernames for the per-user report
type UserFinder interface {
	GetUserByUsername(username string) (*models.User, error)
}

// ReportService serves read-only statistics over game sessions
type ReportService struct {
	reports ReportStore
	users   UserFinder
}

// NewReportService creates a new report service
func NewReportService(reports ReportStore, users UserFinder) *ReportService {
	return &ReportService{reports: reports, users: users}
}

// DailySummary returns the day's play statistics. Administrator only.
func (s *ReportService) DailySummary(caller *models.User, today time.Time) (*models.DailySummary, error) {
	if caller == nil || !caller.IsAdmin {
		return nil, ErrForbidden
	}
	summary, err := s.reports.DailySummary(models.DayKey(today))
	if err != nil {
		return nil, fmt.Errorf("failed to build daily summary: %w", err)
	}
	return summary, nil
}

// UserHistory returns a user's per-day history, most recent day first.
// Administrators may query anyone; other callers only themselves.
func (s *ReportService) UserHistory(caller *models.User, username string) ([]models.UserDayReport, error) {
	if caller == nil {
		return nil, ErrForbidden
	}
	if !caller.IsAdmin && caller.Username != username {
		return nil, ErrForbidden
	}

	target := caller
	if caller.Username != username {
		found, err := s.users.GetUserByUsername(username)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if found == nil {
			return nil, ErrUserNotFound
		}
		target = found
	}

	report, err := s.reports.UserHistory(target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to build user history: %w", err)
	}
	return report, nil
}
