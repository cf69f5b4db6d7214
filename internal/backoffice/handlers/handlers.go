package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/medikart/backoffice/internal/backoffice/middleware"
	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/medikart/backoffice/internal/backoffice/repository"
	"github.com/medikart/backoffice/internal/backoffice/service"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// Handler handles all HTTP requests
type Handler struct {
	Repo                  repository.Repository
	Notifier              *service.Notifier
	JWTSecret             string
	FreeDeliveryThreshold float64
	DeliveryFee           float64

	// resetLimiter throttles forgot-password requests across all callers
	resetLimiter *rate.Limiter
}

// NewHandler creates a new handler
func NewHandler(repo repository.Repository, notifier *service.Notifier, jwtSecret string, freeDeliveryThreshold, deliveryFee float64) *Handler {
	return &Handler{
		Repo:                  repo,
		Notifier:              notifier,
		JWTSecret:             jwtSecret,
		FreeDeliveryThreshold: freeDeliveryThreshold,
		DeliveryFee:           deliveryFee,
		resetLimiter:          rate.NewLimiter(rate.Limit(1), 5),
	}
}

// RegisterStaff handles staff account registration
func (h *Handler) RegisterStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	// Parse request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if req.Login == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Login, email and password are required", http.StatusBadRequest)
		return
	}

	if req.Role == "" {
		req.Role = models.RoleStaff
	}
	if req.Role != models.RoleStaff && req.Role != models.RoleAdmin {
		http.Error(w, "Unknown role", http.StatusBadRequest)
		return
	}

	// Check if the login is already taken
	ctx := r.Context()
	existing, err := h.Repo.GetStaffByLogin(ctx, req.Login)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	if existing != nil {
		http.Error(w, "Login already taken", http.StatusConflict)
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	// Create staff account
	staffID, err := h.Repo.CreateStaff(ctx, req.Login, req.Email, string(hashedPassword), req.Role)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	// Generate token
	token, err := middleware.GenerateToken(staffID, req.Role, h.JWTSecret)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	// Set cookie and header
	middleware.SetAuthCookie(w, token)
	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

// LoginStaff handles staff login
func (h *Handler) LoginStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	// Parse request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if req.Login == "" || req.Password == "" {
		http.Error(w, "Login and password are required", http.StatusBadRequest)
		return
	}

	// Get staff account
	ctx := r.Context()
	staff, err := h.Repo.GetStaffByLogin(ctx, req.Login)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	if staff == nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// Check password
	err = bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password))
	if err != nil {
		h.Repo.IncrementFailedLogins(ctx, staff.ID)
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// Generate token
	token, err := middleware.GenerateToken(staff.ID, staff.Role, h.JWTSecret)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	// Set cookie and header
	middleware.SetAuthCookie(w, token)
	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

// writeJSON writes a JSON response body
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
