package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/medikart/backoffice/internal/backoffice/pricing"
)

// ErrUnknownStatus is returned by Transition for a status outside the fixed set
var ErrUnknownStatus = errors.New("unknown order status")

// Draft is a prospective order before validation
type Draft struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	PaymentMethod   string
	Items           []models.OrderItem
}

// Result carries the outcome of validating a draft
type Result struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors,omitempty"`
}

var validStatuses = map[string]bool{
	models.OrderStatusProcessing: true,
	models.OrderStatusConfirmed:  true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
	models.OrderStatusReturned:   true,
}

// Validate checks a draft for required fields and well-formed line items.
// It never fails; the caller inspects the result.
func Validate(d Draft) Result {
	errs := make(map[string]string)

	if strings.TrimSpace(d.CustomerName) == "" {
		errs["name"] = "customer name is required"
	}
	if strings.TrimSpace(d.CustomerEmail) == "" {
		errs["email"] = "customer email is required"
	}
	if strings.TrimSpace(d.CustomerPhone) == "" {
		errs["phone"] = "customer phone is required"
	}
	if strings.TrimSpace(d.ShippingAddress) == "" {
		errs["address"] = "shipping address is required"
	}
	if strings.TrimSpace(d.PaymentMethod) == "" {
		errs["payment_method"] = "payment method is required"
	}
	if len(d.Items) == 0 {
		errs["items"] = "order must contain at least one item"
	}

	for i, item := range d.Items {
		key := fmt.Sprintf("items[%d]", i)
		switch {
		case item.ItemID == "" || item.Name == "":
			errs[key] = "item id and name are required"
		case item.UnitPrice <= 0:
			errs[key] = "item price must be positive"
		case item.Quantity <= 0:
			errs[key] = "item quantity must be positive"
		}
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// Create builds a normalized order from a customer's cart. Totals come from
// the pricing summary; the order number is derived from the clock.
func Create(customerID int64, d Draft, threshold, fee float64, now time.Time) *models.Order {
	summary := pricing.CartSummary(d.Items, threshold, fee)

	return &models.Order{
		Number:          fmt.Sprintf("ORD-%d", now.UnixMilli()),
		CustomerID:      customerID,
		Items:           d.Items,
		Subtotal:        summary.Subtotal,
		Discount:        summary.Discount,
		DeliveryFee:     summary.DeliveryFee,
		Total:           summary.Total,
		Status:          models.OrderStatusProcessing,
		ShippingAddress: d.ShippingAddress,
		PaymentMethod:   d.PaymentMethod,
		CreatedAt:       now,
		StatusChangedAt: now,
	}
}

// Transition moves an order to a new status. Only membership in the fixed
// status set is checked; any status may follow any other.
func Transition(o *models.Order, newStatus string, now time.Time) error {
	if !validStatuses[newStatus] {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}

	o.Status = newStatus
	o.StatusChangedAt = now
	return nil
}
