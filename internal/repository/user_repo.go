package repository

import (
	"database/sql"
	"time"

	"wordarena/internal/database"
	"wordarena/internal/models"
)

// UserRepository handles user and auth session database operations
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, username, email, password_hash, is_admin, created_at, updated_at"

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser creates a new user account
func (r *UserRepository) CreateUser(username, email, passwordHash string) (*models.User, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		username, email, passwordHash,
	)
	if err != nil {
		return nil, err
	}
	return r.GetUserByID(id)
}

// GetUserByID retrieves a user by ID, or nil if absent
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	return scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

// GetUserByUsername retrieves a user by username, or nil if absent
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	return scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username))
}

// GetUserByEmail retrieves a user by email, or nil if absent
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	return scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email))
}

// SetAdmin updates a user's administrator flag
func (r *UserRepository) SetAdmin(userID int64, isAdmin bool) error {
	_, err := r.db.Exec(
		"UPDATE users SET is_admin = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		isAdmin, userID,
	)
	return err
}

// AllUsers returns all users in ID order. Used by the export tool.
func (r *UserRepository) AllUsers() ([]models.User, error) {
	rows, err := r.db.Query("SELECT " + userColumns + " FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateSession creates an auth session for a user
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.AuthSession, error) {
	_, err := r.db.Exec(
		"INSERT INTO auth_sessions (id, user_id, expires_at) VALUES (?, ?, ?)",
		sessionID, userID, expiresAt,
	)
	if err != nil {
		return nil, err
	}
	return r.GetSession(sessionID)
}

// GetSession retrieves an auth session by ID, or nil if absent
func (r *UserRepository) GetSession(sessionID string) (*models.AuthSession, error) {
	session := &models.AuthSession{}
	err := r.db.QueryRow(
		"SELECT id, user_id, expires_at, created_at FROM auth_sessions WHERE id = ?",
		sessionID,
	).Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes an auth session
func (r *UserRepository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM auth_sessions WHERE id = ?", sessionID)
	return err
}

// DeleteExpiredSessions removes all expired auth sessions
func (r *UserRepository) DeleteExpiredSessions() error {
	_, err := r.db.Exec("DELETE FROM auth_sessions WHERE expires_at < ?", time.Now())
	return err
}
