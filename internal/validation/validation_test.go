package validation

import "testing"

func TestNormalizeGuess(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "lowercase", raw: "apple", expected: "APPLE"},
		{name: "mixed case", raw: "ApPlE", expected: "APPLE"},
		{name: "surrounding whitespace", raw: "  stone \n", expected: "STONE"},
		{name: "already normalized", raw: "BRAVE", expected: "BRAVE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeGuess(tt.raw); got != tt.expected {
				t.Errorf("NormalizeGuess(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestValidateGuessWord(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		wantErr bool
	}{
		{name: "valid word", word: "APPLE", wantErr: false},
		{name: "too short", word: "APP", wantErr: true},
		{name: "too long", word: "APPLES", wantErr: true},
		{name: "empty", word: "", wantErr: true},
		{name: "digits", word: "APP1E", wantErr: true},
		{name: "punctuation", word: "AP-LE", wantErr: true},
		{name: "not normalized", word: "apple", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGuessWord(tt.word)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGuessWord(%q) error = %v, wantErr %v", tt.word, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid", username: "player_one", wantErr: false},
		{name: "too short", username: "ab", wantErr: true},
		{name: "empty", username: "", wantErr: true},
		{name: "spaces", username: "player one", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "player@example.com", wantErr: false},
		{name: "missing at", email: "playerexample.com", wantErr: true},
		{name: "empty", email: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough"); err != nil {
		t.Errorf("unexpected error for valid password: %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("expected error for short password")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}
