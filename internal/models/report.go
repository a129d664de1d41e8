package models

// DailySummary aggregates one calendar day of play across all users
type DailySummary struct {
	Date           string `json:"date"`
	UsersPlayed    int    `json:"users_played"`
	CorrectGuesses int    `json:"correct_guesses"`
}

// UserDayReport is one row of a user's per-day history
type UserDayReport struct {
	SessionDate string `json:"session_date"`
	WordsTried  int    `json:"words_tried"`
	Correct     int    `json:"correct"`
}
