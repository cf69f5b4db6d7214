package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/reset"
	"golang.org/x/crypto/bcrypt"
)

// ForgotPassword issues a time-boxed reset token for an email. The response
// is identical whether or not the account exists, so callers cannot probe
// for registered emails.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if !h.resetLimiter.Allow() {
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
		return
	}

	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	staff, err := h.Repo.GetStaffByEmail(ctx, req.Email)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	if staff != nil {
		token := reset.NewToken(req.Email, time.Now())

		// Overwrites any prior pending token for this email
		if err := h.Repo.SaveResetToken(ctx, token); err != nil {
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		if err := h.Notifier.SendResetToken(ctx, token); err != nil {
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "If the account exists, a reset link has been sent",
	})
}

// ResetPassword validates a reset token and changes the credential. The token
// is single-use; a successful reset also clears the failed-login counter.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Token == "" || req.NewPassword == "" {
		http.Error(w, "Email, token and new password are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	stored, err := h.Repo.GetResetToken(ctx, req.Email)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	if !reset.Validate(stored, req.Token, time.Now()) {
		http.Error(w, reset.ErrInvalidToken.Error(), http.StatusBadRequest)
		return
	}

	if err := reset.CheckPassword(req.NewPassword); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.UpdateStaffPassword(ctx, req.Email, string(hashedPassword)); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	// Token is single-use
	if err := h.Repo.DeleteResetToken(ctx, req.Email); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.ResetFailedLogins(ctx, req.Email); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
