package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wordarena/internal/models"
	"wordarena/internal/service"
	"wordarena/internal/validation"
)

// GameHandler handles gameplay HTTP requests
type GameHandler struct {
	sessionService *service.SessionService
	guessService   *service.GuessService
}

// NewGameHandler creates a new game handler
func NewGameHandler(sessionService *service.SessionService, guessService *service.GuessService) *GameHandler {
	return &GameHandler{
		sessionService: sessionService,
		guessService:   guessService,
	}
}

type guessRequest struct {
	GuessedWord string `json:"guessed_word"`
}

type guessResponse struct {
	Colors      []models.Mark `json:"colors"`
	IsCorrect   bool          `json:"is_correct"`
	GuessesLeft int           `json:"guesses_left"`
	TargetWord  string        `json:"target_word,omitempty"`
}

// StartSession begins a new game session for the authenticated user
func (h *GameHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	session, err := h.sessionService.StartSession(user.ID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrQuotaExceeded) {
			respondJSON(w, http.StatusForbidden, map[string]interface{}{
				"session_started": false,
				"message":         "Daily session limit reached (3 per day).",
			})
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to start session", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session_started": true,
		"session_id":      session.ID,
		"message":         "Session started.",
	})
}

// SubmitGuess scores one guess against the user's active session
func (h *GameHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	result, err := h.guessService.SubmitGuess(user.ID, req.GuessedWord, time.Now())
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		case errors.Is(err, service.ErrNoActiveSession):
			respondWithError(w, http.StatusForbidden, "No active session. Start a new session first.", "", nil)
		case errors.Is(err, service.ErrSessionExhausted):
			respondWithError(w, http.StatusForbidden, "No more guesses allowed for this session.", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to submit guess", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, guessResponse{
		Colors:      result.Colors,
		IsCorrect:   result.IsCorrect,
		GuessesLeft: result.GuessesLeft,
		TargetWord:  result.TargetWord,
	})
}
