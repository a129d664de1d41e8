package repository

import (
	"database/sql"
	"fmt"

	"wordarena/internal/database"
	"wordarena/internal/models"
)

// DefaultWords is the bootstrap word pool seeded when the pool is empty
// or via the admin seed command.
var DefaultWords = []string{
	"APPLE", "BRAVE", "CHIEF", "DELTA", "EAGER",
	"FAITH", "GHOST", "HOUSE", "INPUT", "JUICE",
	"KNIFE", "LIGHT", "MIGHT", "NIGHT", "OCEAN",
	"PLANT", "QUICK", "RIVER", "STONE", "TRUST",
}

// WordRepository handles word pool database operations
type WordRepository struct {
	db *database.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{db: db}
}

// CreateWord inserts a word into the pool. The word must already be
// normalized; uniqueness is enforced by the schema.
func (r *WordRepository) CreateWord(text string) (*models.Word, error) {
	id, err := r.db.ExecReturningID("INSERT INTO words (word) VALUES (?)", text)
	if err != nil {
		return nil, err
	}
	return r.GetWordByID(id)
}

// GetWordByID retrieves a word by ID
func (r *WordRepository) GetWordByID(id int64) (*models.Word, error) {
	word := &models.Word{}
	err := r.db.QueryRow("SELECT id, word, created_at FROM words WHERE id = ?", id).
		Scan(&word.ID, &word.Text, &word.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return word, nil
}

// GetWordByText retrieves a word by its text, or nil if absent
func (r *WordRepository) GetWordByText(text string) (*models.Word, error) {
	word := &models.Word{}
	err := r.db.QueryRow("SELECT id, word, created_at FROM words WHERE word = ?", text).
		Scan(&word.ID, &word.Text, &word.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return word, nil
}

// CountWords returns the size of the word pool
func (r *WordRepository) CountWords() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&count)
	return count, err
}

// WordAt returns the word at the given offset in ID order. Used together
// with CountWords for uniform random selection.
func (r *WordRepository) WordAt(offset int) (*models.Word, error) {
	word := &models.Word{}
	err := r.db.QueryRow("SELECT id, word, created_at FROM words ORDER BY id LIMIT 1 OFFSET ?", offset).
		Scan(&word.ID, &word.Text, &word.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return word, nil
}

// AllWords returns the full word pool in ID order
func (r *WordRepository) AllWords() ([]models.Word, error) {
	rows, err := r.db.Query("SELECT id, word, created_at FROM words ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var word models.Word
		if err := rows.Scan(&word.ID, &word.Text, &word.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// SeedDefaultWords populates the pool with the default word list. Words
// already present are skipped, so re-running is a no-op. Returns the number
// of words added.
func (r *WordRepository) SeedDefaultWords() (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, w := range DefaultWords {
		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM words WHERE word = ?", w).Scan(&count); err != nil {
			return 0, fmt.Errorf("failed to check word %s: %w", w, err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.Exec("INSERT INTO words (word) VALUES (?)", w); err != nil {
			return 0, fmt.Errorf("failed to insert word %s: %w", w, err)
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return added, nil
}
