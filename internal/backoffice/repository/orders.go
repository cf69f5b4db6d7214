package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/models"
)

// Order repository methods
func (r *PostgresRepository) CreateOrder(ctx context.Context, o *models.Order) (int64, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRowContext(
		ctx,
		`INSERT INTO orders
		    (number, customer_id, items, subtotal, discount, delivery_fee, total,
		     status, shipping_address, payment_method, created_at, status_changed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		o.Number, o.CustomerID, items, o.Subtotal, o.Discount, o.DeliveryFee, o.Total,
		o.Status, o.ShippingAddress, o.PaymentMethod, o.CreatedAt, o.StatusChangedAt,
	).Scan(&id)

	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepository) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(
		ctx,
		`SELECT id, number, customer_id, items, subtotal, discount, delivery_fee, total,
		        status, shipping_address, payment_method, created_at, status_changed_at
		 FROM orders WHERE number = $1`,
		number,
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return order, nil
}

func (r *PostgresRepository) GetCustomerOrders(ctx context.Context, customerID int64) ([]models.Order, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, number, customer_id, items, subtotal, discount, delivery_fee, total,
		        status, shipping_address, payment_method, created_at, status_changed_at
		 FROM orders
		 WHERE customer_id = $1
		 ORDER BY created_at DESC`,
		customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, number, status string, at time.Time) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE orders SET status = $1, status_changed_at = $2 WHERE number = $3",
		status, at, number,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	var items []byte
	if err := row.Scan(
		&order.ID,
		&order.Number,
		&order.CustomerID,
		&items,
		&order.Subtotal,
		&order.Discount,
		&order.DeliveryFee,
		&order.Total,
		&order.Status,
		&order.ShippingAddress,
		&order.PaymentMethod,
		&order.CreatedAt,
		&order.StatusChangedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, err
	}

	return order, nil
}
