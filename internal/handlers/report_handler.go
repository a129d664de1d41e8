package handlers

import (
	"errors"
	"net/http"
	"time"

	"wordarena/internal/models"
	"wordarena/internal/service"
)

// ReportHandler serves game statistics endpoints
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DailySummary returns today's play statistics. Administrator only.
func (h *ReportHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	summary, err := h.reportService.DailySummary(user, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to build daily summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// UserHistory returns a named user's per-day history
func (h *ReportHandler) UserHistory(w http.ResponseWriter, r *http.Request) {
	h.respondHistory(w, r, r.PathValue("username"))
}

// MyHistory returns the caller's own per-day history
func (h *ReportHandler) MyHistory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}
	h.respondHistory(w, r, user.Username)
}

func (h *ReportHandler) respondHistory(w http.ResponseWriter, r *http.Request, username string) {
	user := GetUserFromContext(r.Context())

	report, err := h.reportService.UserHistory(user, username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
		case errors.Is(err, service.ErrUserNotFound):
			respondWithError(w, http.StatusNotFound, "User not found", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to build user history", err)
		}
		return
	}

	if report == nil {
		report = []models.UserDayReport{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":   username,
		"report": report,
	})
}
