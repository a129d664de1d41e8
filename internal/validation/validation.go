package validation

import (
	"fmt"
	"regexp"
	"strings"

	"wordarena/internal/models"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	alphaRegex    = regexp.MustCompile(`^[A-Z]+$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NormalizeGuess uppercases and trims a raw guess
func NormalizeGuess(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateGuessWord checks that a normalized guess is exactly five alphabetic
// characters. Dictionary membership is deliberately not checked.
func ValidateGuessWord(word string) error {
	if len(word) != models.WordLength {
		return ValidationError{Field: "guessed_word", Message: fmt.Sprintf("guessed word must be %d letters", models.WordLength)}
	}
	if !alphaRegex.MatchString(word) {
		return ValidationError{Field: "guessed_word", Message: "guessed word must contain only letters"}
	}
	return nil
}

// ValidatePoolWord checks a word destined for the word pool: five letters,
// already uppercase.
func ValidatePoolWord(word string) error {
	if len(word) != models.WordLength {
		return ValidationError{Field: "word", Message: fmt.Sprintf("word must be %d letters", models.WordLength)}
	}
	if !alphaRegex.MatchString(word) {
		return ValidationError{Field: "word", Message: "word must be uppercase letters only"}
	}
	return nil
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if !usernameRegex.MatchString(username) {
		return ValidationError{Field: "username", Message: "username must be 3-30 letters, digits or underscores"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}
