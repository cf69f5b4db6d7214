package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/medikart/backoffice/internal/backoffice/models"
)

// CreateCustomer registers a storefront customer
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" {
		http.Error(w, "Name, email and phone are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	existing, err := h.Repo.GetCustomerByEmail(ctx, req.Email)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	}

	customer := &models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	id, err := h.Repo.CreateCustomer(ctx, customer)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	customer.ID = id

	writeJSON(w, http.StatusCreated, customer)
}

// GetCustomer returns a single customer
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	customer, err := h.Repo.GetCustomerByID(ctx, customerID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if customer == nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}
