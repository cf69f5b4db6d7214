package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/models"
)

// Invoice repository methods
func (r *PostgresRepository) CreateInvoice(ctx context.Context, inv *models.Invoice) (int64, error) {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return 0, err
	}
	payments, err := json.Marshal(paymentsOrEmpty(inv.Payments))
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRowContext(
		ctx,
		`INSERT INTO invoices
		    (number, customer_id, items, subtotal, tax, discount, total,
		     amount_paid, balance, status, payments, issued_at, due_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		inv.Number, inv.CustomerID, items, inv.Subtotal, inv.Tax, inv.Discount, inv.Total,
		inv.AmountPaid, inv.Balance, inv.Status, payments, inv.IssuedAt, inv.DueAt,
	).Scan(&id)

	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepository) GetInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(
		ctx,
		`SELECT id, number, customer_id, items, subtotal, tax, discount, total,
		        amount_paid, balance, status, payments, issued_at, due_at
		 FROM invoices WHERE id = $1`,
		id,
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return inv, nil
}

// SaveInvoicePayment persists the paid amount, balance, status and payment
// list after a payment has been applied
func (r *PostgresRepository) SaveInvoicePayment(ctx context.Context, inv *models.Invoice) error {
	payments, err := json.Marshal(paymentsOrEmpty(inv.Payments))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(
		ctx,
		"UPDATE invoices SET amount_paid = $1, balance = $2, status = $3, payments = $4 WHERE id = $5",
		inv.AmountPaid, inv.Balance, inv.Status, payments, inv.ID,
	)
	return err
}

func (r *PostgresRepository) ListInvoicesPastDue(ctx context.Context, now time.Time) ([]models.Invoice, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, number, customer_id, items, subtotal, tax, discount, total,
		        amount_paid, balance, status, payments, issued_at, due_at
		 FROM invoices
		 WHERE due_at <= $1 AND status IN ($2, $3)`,
		now, models.InvoiceStatusSent, models.InvoiceStatusPartiallyPaid,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *PostgresRepository) MarkInvoiceOverdue(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE invoices SET status = $1 WHERE id = $2",
		models.InvoiceStatusOverdue, id,
	)
	return err
}

// Estimate repository methods
func (r *PostgresRepository) CreateEstimate(ctx context.Context, est *models.Estimate) (int64, error) {
	items, err := json.Marshal(est.Items)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRowContext(
		ctx,
		`INSERT INTO estimates
		    (number, customer_id, items, subtotal, tax, discount, total, status, issued_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		est.Number, est.CustomerID, items, est.Subtotal, est.Tax, est.Discount, est.Total,
		est.Status, est.IssuedAt,
	).Scan(&id)

	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepository) GetEstimateByID(ctx context.Context, id int64) (*models.Estimate, error) {
	est := &models.Estimate{}
	var items []byte
	var invoiceID sql.NullInt64

	err := r.db.QueryRowContext(
		ctx,
		`SELECT id, number, customer_id, items, subtotal, tax, discount, total, status, invoice_id, issued_at
		 FROM estimates WHERE id = $1`,
		id,
	).Scan(&est.ID, &est.Number, &est.CustomerID, &items, &est.Subtotal, &est.Tax,
		&est.Discount, &est.Total, &est.Status, &invoiceID, &est.IssuedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if invoiceID.Valid {
		est.InvoiceID = invoiceID.Int64
	}

	if err := json.Unmarshal(items, &est.Items); err != nil {
		return nil, err
	}

	return est, nil
}

func (r *PostgresRepository) MarkEstimateConverted(ctx context.Context, estimateID, invoiceID int64) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE estimates SET status = $1, invoice_id = $2 WHERE id = $3",
		models.EstimateStatusConverted, invoiceID, estimateID,
	)
	return err
}

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var items, payments []byte
	if err := row.Scan(
		&inv.ID,
		&inv.Number,
		&inv.CustomerID,
		&items,
		&inv.Subtotal,
		&inv.Tax,
		&inv.Discount,
		&inv.Total,
		&inv.AmountPaid,
		&inv.Balance,
		&inv.Status,
		&payments,
		&inv.IssuedAt,
		&inv.DueAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payments, &inv.Payments); err != nil {
		return nil, err
	}

	return inv, nil
}

func paymentsOrEmpty(payments []models.Payment) []models.Payment {
	if payments == nil {
		return []models.Payment{}
	}
	return payments
}
