package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/medikart/backoffice/internal/backoffice/models"
)

// ErrInvalidAmount is returned when a payment amount is not positive
var ErrInvalidAmount = errors.New("payment amount must be positive")

// Invoices fall due this long after issue
const DueOffset = 30 * 24 * time.Hour

// RecordPayment applies a payment to an invoice: increments amountPaid,
// decrements balance, recomputes the derived status and appends a payment
// reference. Calling it twice for the same real-world payment double-counts;
// callers are responsible for at-most-once invocation.
func RecordPayment(inv *models.Invoice, amount float64, method string, now time.Time) (*models.Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	inv.AmountPaid += amount
	inv.Balance -= amount

	switch {
	case inv.Balance <= 0:
		inv.Status = models.InvoiceStatusPaid
	case inv.AmountPaid > 0 && inv.AmountPaid < inv.Total:
		inv.Status = models.InvoiceStatusPartiallyPaid
	}

	payment := models.Payment{
		Reference:  uuid.NewString(),
		Amount:     amount,
		Method:     method,
		RecordedAt: now,
	}
	inv.Payments = append(inv.Payments, payment)

	return &payment, nil
}

// ConvertEstimateToInvoice copies an estimate's line items and totals into a
// fresh invoice with nothing paid, due 30 days from issue. The estimate is
// marked converted and linked to the new invoice by the caller once the
// invoice has been persisted and has an id.
func ConvertEstimateToInvoice(est *models.Estimate, number string, now time.Time) *models.Invoice {
	items := make([]models.InvoiceItem, len(est.Items))
	copy(items, est.Items)

	inv := &models.Invoice{
		Number:     number,
		CustomerID: est.CustomerID,
		Items:      items,
		Subtotal:   est.Subtotal,
		Tax:        est.Tax,
		Discount:   est.Discount,
		Total:      est.Total,
		AmountPaid: 0,
		Balance:    est.Total,
		Status:     models.InvoiceStatusSent,
		IssuedAt:   now,
		DueAt:      now.Add(DueOffset),
	}

	est.Status = models.EstimateStatusConverted

	return inv
}

// IsOverdue reports whether an unpaid or partially paid invoice is past due
func IsOverdue(inv *models.Invoice, now time.Time) bool {
	if inv.Status == models.InvoiceStatusPaid || inv.Status == models.InvoiceStatusDraft {
		return false
	}
	return now.After(inv.DueAt)
}
