package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/medikart/backoffice/internal/backoffice/loyalty"
	"github.com/medikart/backoffice/internal/backoffice/models"
)

// CreateProgram creates a loyalty program. Admin only.
func (h *Handler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string        `json:"name"`
		Tiers     []models.Tier `json:"tiers"`
		TierBasis string        `json:"tier_basis"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "Program name is required", http.StatusBadRequest)
		return
	}

	if req.TierBasis == "" {
		req.TierBasis = models.TierBasisLifetime
	}
	if req.TierBasis != models.TierBasisLifetime && req.TierBasis != models.TierBasisBalance {
		http.Error(w, "Unknown tier basis", http.StatusBadRequest)
		return
	}

	program := &models.LoyaltyProgram{
		Name:      req.Name,
		Tiers:     req.Tiers,
		TierBasis: req.TierBasis,
	}

	ctx := r.Context()
	id, err := h.Repo.CreateProgram(ctx, program)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	program.ID = id

	writeJSON(w, http.StatusCreated, program)
}

// Enroll creates a loyalty membership for a customer
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID int64 `json:"customer_id"`
		ProgramID  int64 `json:"program_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	program, err := h.Repo.GetProgramByID(ctx, req.ProgramID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if program == nil {
		http.Error(w, "Program not found", http.StatusNotFound)
		return
	}

	customer, err := h.Repo.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if customer == nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	existing, err := h.Repo.GetMembership(ctx, req.CustomerID, req.ProgramID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	membership, err := loyalty.Enroll(customer.ID, program, existing, time.Now())
	if err != nil {
		if errors.Is(err, loyalty.ErrAlreadyEnrolled) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.CreateMembership(ctx, membership); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, membership)
}

// GetMembership returns a membership with its history
func (h *Handler) GetMembership(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx := r.Context()
	membership, err := h.Repo.GetMembershipByID(ctx, id)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if membership == nil {
		http.Error(w, "Membership not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, membership)
}

// ApplyLoyaltyEvent applies an earn/redeem/expire/adjust event to a membership
func (h *Handler) ApplyLoyaltyEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Type        string  `json:"type"`
		Points      float64 `json:"points"`
		Description string  `json:"description"`
		Reference   string  `json:"reference"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	membership, err := h.Repo.GetMembershipByID(ctx, id)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if membership == nil {
		http.Error(w, "Membership not found", http.StatusNotFound)
		return
	}

	program, err := h.Repo.GetProgramByID(ctx, membership.ProgramID)
	if err != nil || program == nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	err = loyalty.ApplyEvent(membership, program, req.Type, req.Points, req.Description, req.Reference, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, loyalty.ErrInsufficientPoints):
			http.Error(w, err.Error(), http.StatusPaymentRequired)
		case errors.Is(err, loyalty.ErrUnknownEventType):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "Server error", http.StatusInternalServerError)
		}
		return
	}

	if err := h.Repo.SaveMembership(ctx, membership); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, membership)
}
