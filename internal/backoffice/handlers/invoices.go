package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/medikart/backoffice/internal/backoffice/billing"
	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/medikart/backoffice/internal/backoffice/pricing"
	"github.com/medikart/backoffice/internal/backoffice/utils"
)

// CreateEstimate creates a quote for a customer
func (h *Handler) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID int64                `json:"customer_id"`
		Items      []models.InvoiceItem `json:"items"`
		Tax        float64              `json:"tax"`
		Discount   float64              `json:"discount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if len(req.Items) == 0 {
		http.Error(w, "Estimate must contain at least one item", http.StatusUnprocessableEntity)
		return
	}

	now := time.Now()
	est := &models.Estimate{
		Number:     fmt.Sprintf("EST-%d", now.UnixMilli()),
		CustomerID: req.CustomerID,
		Items:      req.Items,
		Tax:        req.Tax,
		Discount:   req.Discount,
		Status:     models.EstimateStatusOpen,
		IssuedAt:   now,
	}

	for i := range est.Items {
		item := &est.Items[i]
		item.Amount = pricing.LineTotal(item.UnitPrice, item.Quantity)
		est.Subtotal += item.Amount
	}
	est.Total = est.Subtotal + est.Tax - est.Discount

	ctx := r.Context()
	id, err := h.Repo.CreateEstimate(ctx, est)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	est.ID = id

	writeJSON(w, http.StatusCreated, est)
}

// ConvertEstimate turns an open estimate into an invoice
func (h *Handler) ConvertEstimate(w http.ResponseWriter, r *http.Request) {
	estimateID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	est, err := h.Repo.GetEstimateByID(ctx, estimateID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if est == nil {
		http.Error(w, "Estimate not found", http.StatusNotFound)
		return
	}
	if est.Status == models.EstimateStatusConverted {
		http.Error(w, "Estimate already converted", http.StatusConflict)
		return
	}

	now := time.Now()
	inv := billing.ConvertEstimateToInvoice(est, fmt.Sprintf("INV-%d", now.UnixMilli()), now)

	invoiceID, err := h.Repo.CreateInvoice(ctx, inv)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	inv.ID = invoiceID

	if err := h.Repo.MarkEstimateConverted(ctx, est.ID, invoiceID); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, inv)
}

// GetInvoice returns a single invoice
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	inv, err := h.Repo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if inv == nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

// RecordPayment applies a payment to an invoice
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var req struct {
		Amount     float64 `json:"amount"`
		Method     string  `json:"method"`
		CardNumber string  `json:"card_number,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	// Card payments must carry a plausible card number
	if req.Method == "card" && !utils.ValidateCardNumber(req.CardNumber) {
		http.Error(w, "Invalid card number", http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	inv, err := h.Repo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if inv == nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	payment, err := billing.RecordPayment(inv, req.Amount, req.Method, time.Now())
	if err != nil {
		if errors.Is(err, billing.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.SaveInvoicePayment(ctx, inv); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Payment *models.Payment `json:"payment"`
		Invoice *models.Invoice `json:"invoice"`
	}{payment, inv})
}
