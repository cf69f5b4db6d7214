package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresRepository{db: db}, mock
}

func TestGetStaffByLogin(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Now()
	rows := sqlmock.NewRows([]string{"id", "login", "email", "password_hash", "role", "failed_logins", "created_at"}).
		AddRow(int64(3), "asha", "asha@example.com", "hash", "staff", 0, created)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, login, email, password_hash, role, failed_logins, created_at FROM staff WHERE login = $1",
	)).WithArgs("asha").WillReturnRows(rows)

	staff, err := repo.GetStaffByLogin(context.Background(), "asha")
	require.NoError(t, err)
	require.NotNil(t, staff)
	assert.Equal(t, int64(3), staff.ID)
	assert.Equal(t, "staff", staff.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStaffByLoginNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, login, email, password_hash, role, failed_logins, created_at FROM staff WHERE login = $1",
	)).WithArgs("ghost").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	staff, err := repo.GetStaffByLogin(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, staff)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveInvoicePayment(t *testing.T) {
	repo, mock := newMockRepo(t)

	inv := &models.Invoice{
		ID:         9,
		AmountPaid: 40,
		Balance:    60,
		Status:     models.InvoiceStatusPartiallyPaid,
		Payments: []models.Payment{
			{Reference: "ref-1", Amount: 40, Method: "cash", RecordedAt: time.Now()},
		},
	}

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE invoices SET amount_paid = $1, balance = $2, status = $3, payments = $4 WHERE id = $5",
	)).WithArgs(40.0, 60.0, models.InvoiceStatusPartiallyPaid, sqlmock.AnyArg(), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveInvoicePayment(context.Background(), inv))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveResetTokenUpsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	tok := models.ResetToken{
		Email:     "asha@example.com",
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	mock.ExpectExec("INSERT INTO reset_tokens").
		WithArgs(tok.Email, tok.Token, tok.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveResetToken(context.Background(), tok))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredResetTokens(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM reset_tokens WHERE expires_at <= $1",
	)).WithArgs(now).WillReturnResult(sqlmock.NewResult(0, 2))

	purged, err := repo.DeleteExpiredResetTokens(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	at := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE orders SET status = $1, status_changed_at = $2 WHERE number = $3",
	)).WithArgs(models.OrderStatusShipped, at, "ORD-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateOrderStatus(context.Background(), "ORD-1", models.OrderStatusShipped, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
