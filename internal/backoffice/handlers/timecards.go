package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/medikart/backoffice/internal/backoffice/middleware"
	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/medikart/backoffice/internal/backoffice/timecard"
)

// ClockIn opens a timecard for the calling staff member
func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	date := now.Format("2006-01-02")

	ctx := r.Context()
	open, err := h.Repo.GetOpenTimecard(ctx, staffID, date)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if open != nil {
		http.Error(w, "Already clocked in", http.StatusConflict)
		return
	}

	tc := &models.Timecard{
		StaffID: staffID,
		Date:    date,
		ClockIn: &now,
	}

	id, err := h.Repo.CreateTimecard(ctx, tc)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	tc.ID = id

	writeJSON(w, http.StatusCreated, tc)
}

// ClockOut closes a timecard and computes hours worked
func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	timecardID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var req struct {
		Breaks []models.Break `json:"breaks"`
	}

	// Body is optional: clocking out with no breaks is the common case
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
	}

	ctx := r.Context()
	tc, err := h.Repo.GetTimecardByID(ctx, timecardID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if tc == nil {
		http.Error(w, "Timecard not found", http.StatusNotFound)
		return
	}

	if err := timecard.ClockOut(tc, time.Now(), req.Breaks); err != nil {
		if errors.Is(err, timecard.ErrNotClockedIn) || errors.Is(err, timecard.ErrAlreadyClockedOut) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.SaveTimecardClockOut(ctx, tc); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, tc)
}

// GetTimecard returns a single timecard
func (h *Handler) GetTimecard(w http.ResponseWriter, r *http.Request) {
	timecardID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tc, err := h.Repo.GetTimecardByID(ctx, timecardID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if tc == nil {
		http.Error(w, "Timecard not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, tc)
}
