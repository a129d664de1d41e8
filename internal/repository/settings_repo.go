package repository

import (
	"wordarena/internal/database"
)

// SettingsRepository handles runtime settings stored as key/value pairs
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key
func (r *SettingsRepository) GetSetting(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	return value, err
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(key, value string) error {
	_, err := r.db.Exec(r.db.Dialect.UpsertSettings(), key, value)
	return err
}

// IsRegistrationOpen reports whether new accounts may be created.
// Registration is open unless explicitly closed.
func (r *SettingsRepository) IsRegistrationOpen() bool {
	value, err := r.GetSetting("registration_open")
	if err != nil {
		return true
	}
	return value != "false"
}

// SetRegistrationOpen opens or closes account registration
func (r *SettingsRepository) SetRegistrationOpen(open bool) error {
	value := "true"
	if !open {
		value = "false"
	}
	return r.SetSetting("registration_open", value)
}
