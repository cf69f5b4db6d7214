package pricing

import (
	"math"

	"github.com/medikart/backoffice/internal/backoffice/models"
)

// Default storefront delivery fee rules
const (
	DefaultFreeDeliveryThreshold = 500.0
	DefaultDeliveryFee           = 49.0
)

// Summary represents the pricing breakdown for a cart
type Summary struct {
	Subtotal    float64 `json:"subtotal"`
	TotalMRP    float64 `json:"total_mrp"`
	Discount    float64 `json:"discount"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// DiscountPercentage returns the rounded percentage saved off the MRP.
// Returns 0 when the MRP is non-positive or there is no markdown.
func DiscountPercentage(mrp, discountedPrice float64) int {
	if mrp <= 0 || discountedPrice >= mrp {
		return 0
	}
	return int(math.Round(((mrp - discountedPrice) / mrp) * 100))
}

// CartSummary computes the pricing breakdown for a cart. The delivery fee
// applies only when the subtotal is below the free-delivery threshold.
// An empty cart yields an all-zero summary.
func CartSummary(items []models.OrderItem, threshold, fee float64) Summary {
	if len(items) == 0 {
		return Summary{}
	}

	var s Summary
	for _, item := range items {
		qty := float64(item.Quantity)
		s.Subtotal += item.UnitPrice * qty
		s.TotalMRP += item.MRP * qty
	}
	s.Discount = s.TotalMRP - s.Subtotal

	if s.Subtotal < threshold {
		s.DeliveryFee = fee
	}
	s.Total = s.Subtotal + s.DeliveryFee

	return s
}

// LineTotal returns the extended amount for a quantity at a unit price
func LineTotal(unitPrice float64, quantity int) float64 {
	return math.Round(unitPrice*float64(quantity)*100) / 100
}
