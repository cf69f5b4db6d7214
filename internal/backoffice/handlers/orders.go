package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/medikart/backoffice/internal/backoffice/order"
)

// CreateOrder handles checkout: validates the draft, prices the cart and
// persists the normalized order
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID      int64              `json:"customer_id"`
		CustomerName    string             `json:"customer_name"`
		CustomerEmail   string             `json:"customer_email"`
		CustomerPhone   string             `json:"customer_phone"`
		ShippingAddress string             `json:"shipping_address"`
		PaymentMethod   string             `json:"payment_method"`
		Items           []models.OrderItem `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	draft := order.Draft{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Items:           req.Items,
	}

	result := order.Validate(draft)
	if !result.IsValid {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	ctx := r.Context()
	customer, err := h.Repo.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if customer == nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	o := order.Create(customer.ID, draft, h.FreeDeliveryThreshold, h.DeliveryFee, time.Now())

	id, err := h.Repo.CreateOrder(ctx, o)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	o.ID = id

	writeJSON(w, http.StatusCreated, o)
}

// GetOrders returns a customer's orders
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(r.URL.Query().Get("customer_id"), 10, 64)
	if err != nil {
		http.Error(w, "customer_id is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	orders, err := h.Repo.GetCustomerOrders(ctx, customerID)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	// If no orders, return 204
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetOrder returns a single order by number
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	ctx := r.Context()
	o, err := h.Repo.GetOrderByNumber(ctx, number)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if o == nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, o)
}

// UpdateOrderStatus moves an order to a new status
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	var req struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	o, err := h.Repo.GetOrderByNumber(ctx, number)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	if o == nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	if err := order.Transition(o, req.Status, time.Now()); err != nil {
		if errors.Is(err, order.ErrUnknownStatus) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.UpdateOrderStatus(ctx, o.Number, o.Status, o.StatusChangedAt); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, o)
}
