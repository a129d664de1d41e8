package repository

import (
	"wordarena/internal/database"
	"wordarena/internal/models"
)

// ReportRepository handles read-only reporting queries over game sessions
type ReportRepository struct {
	db *database.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *database.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// DailySummary counts distinct players and won sessions for a calendar day
func (r *ReportRepository) DailySummary(day string) (*models.DailySummary, error) {
	summary := &models.DailySummary{Date: day}

	err := r.db.QueryRow(
		"SELECT COUNT(DISTINCT user_id) FROM game_sessions WHERE session_date = ?",
		day,
	).Scan(&summary.UsersPlayed)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(
		"SELECT COUNT(*) FROM game_sessions WHERE session_date = ? AND is_won = "+r.db.Dialect.BoolValue(true),
		day,
	).Scan(&summary.CorrectGuesses)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// UserHistory groups a user's sessions by day, most recent day first
func (r *ReportRepository) UserHistory(userID int64) ([]models.UserDayReport, error) {
	query := `
		SELECT session_date,
		       COUNT(*) AS words_tried,
		       SUM(CASE WHEN is_won = ` + r.db.Dialect.BoolValue(true) + ` THEN 1 ELSE 0 END) AS correct
		FROM game_sessions
		WHERE user_id = ?
		GROUP BY session_date
		ORDER BY session_date DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []models.UserDayReport
	for rows.Next() {
		var row models.UserDayReport
		if err := rows.Scan(&row.SessionDate, &row.WordsTried, &row.Correct); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
