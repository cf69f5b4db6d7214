package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/medikart/backoffice/internal/backoffice/models"
)

// Repository defines the interface for data access operations
type Repository interface {
	// Staff operations
	CreateStaff(ctx context.Context, login, email, passwordHash, role string) (int64, error)
	GetStaffByLogin(ctx context.Context, login string) (*models.Staff, error)
	GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error)
	GetStaffByID(ctx context.Context, id int64) (*models.Staff, error)
	UpdateStaffPassword(ctx context.Context, email, passwordHash string) error
	IncrementFailedLogins(ctx context.Context, id int64) error
	ResetFailedLogins(ctx context.Context, email string) error

	// Reset token operations
	SaveResetToken(ctx context.Context, token models.ResetToken) error
	GetResetToken(ctx context.Context, email string) (*models.ResetToken, error)
	DeleteResetToken(ctx context.Context, email string) error
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)

	// Customer operations
	CreateCustomer(ctx context.Context, c *models.Customer) (int64, error)
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)

	// Order operations
	CreateOrder(ctx context.Context, o *models.Order) (int64, error)
	GetOrderByNumber(ctx context.Context, number string) (*models.Order, error)
	GetCustomerOrders(ctx context.Context, customerID int64) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, number, status string, at time.Time) error

	// Invoice and estimate operations
	CreateInvoice(ctx context.Context, inv *models.Invoice) (int64, error)
	GetInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error)
	SaveInvoicePayment(ctx context.Context, inv *models.Invoice) error
	ListInvoicesPastDue(ctx context.Context, now time.Time) ([]models.Invoice, error)
	MarkInvoiceOverdue(ctx context.Context, id int64) error
	CreateEstimate(ctx context.Context, est *models.Estimate) (int64, error)
	GetEstimateByID(ctx context.Context, id int64) (*models.Estimate, error)
	MarkEstimateConverted(ctx context.Context, estimateID, invoiceID int64) error

	// Loyalty operations
	CreateProgram(ctx context.Context, p *models.LoyaltyProgram) (int64, error)
	GetProgramByID(ctx context.Context, id int64) (*models.LoyaltyProgram, error)
	GetMembership(ctx context.Context, customerID, programID int64) (*models.Membership, error)
	GetMembershipByID(ctx context.Context, id string) (*models.Membership, error)
	CreateMembership(ctx context.Context, m *models.Membership) error
	SaveMembership(ctx context.Context, m *models.Membership) error

	// Timecard operations
	CreateTimecard(ctx context.Context, tc *models.Timecard) (int64, error)
	GetTimecardByID(ctx context.Context, id int64) (*models.Timecard, error)
	GetOpenTimecard(ctx context.Context, staffID int64, date string) (*models.Timecard, error)
	SaveTimecardClockOut(ctx context.Context, tc *models.Timecard) error

	// Initialize and close
	InitDB(databaseURI string) error
	Close() error
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(databaseURI string) *PostgresRepository {
	return &PostgresRepository{
		db: nil, // Will be initialized in InitDB
	}
}

// InitDB initializes the database connection and schema
func (r *PostgresRepository) InitDB(databaseURI string) error {
	db, err := sql.Open("pgx", databaseURI)
	if err != nil {
		return err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	r.db = db

	// Create tables if they don't exist
	err = r.createTables()
	if err != nil {
		db.Close()
		return err
	}

	return nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// createTables creates the necessary tables if they don't exist
func (r *PostgresRepository) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS staff (
			id SERIAL PRIMARY KEY,
			login VARCHAR(255) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'staff',
			failed_logins INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(50) NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			total_spent NUMERIC(10, 2) NOT NULL DEFAULT 0,
			last_visit TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			number VARCHAR(255) UNIQUE NOT NULL,
			customer_id INTEGER REFERENCES customers(id),
			items JSONB NOT NULL DEFAULT '[]',
			subtotal NUMERIC(10, 2) NOT NULL DEFAULT 0,
			discount NUMERIC(10, 2) NOT NULL DEFAULT 0,
			delivery_fee NUMERIC(10, 2) NOT NULL DEFAULT 0,
			total NUMERIC(10, 2) NOT NULL DEFAULT 0,
			status VARCHAR(50) NOT NULL DEFAULT 'Processing',
			shipping_address TEXT NOT NULL DEFAULT '',
			payment_method VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			status_changed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id SERIAL PRIMARY KEY,
			number VARCHAR(255) UNIQUE NOT NULL,
			customer_id INTEGER REFERENCES customers(id),
			items JSONB NOT NULL DEFAULT '[]',
			subtotal NUMERIC(10, 2) NOT NULL DEFAULT 0,
			tax NUMERIC(10, 2) NOT NULL DEFAULT 0,
			discount NUMERIC(10, 2) NOT NULL DEFAULT 0,
			total NUMERIC(10, 2) NOT NULL DEFAULT 0,
			amount_paid NUMERIC(10, 2) NOT NULL DEFAULT 0,
			balance NUMERIC(10, 2) NOT NULL DEFAULT 0,
			status VARCHAR(50) NOT NULL DEFAULT 'draft',
			payments JSONB NOT NULL DEFAULT '[]',
			issued_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			due_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS estimates (
			id SERIAL PRIMARY KEY,
			number VARCHAR(255) UNIQUE NOT NULL,
			customer_id INTEGER REFERENCES customers(id),
			items JSONB NOT NULL DEFAULT '[]',
			subtotal NUMERIC(10, 2) NOT NULL DEFAULT 0,
			tax NUMERIC(10, 2) NOT NULL DEFAULT 0,
			discount NUMERIC(10, 2) NOT NULL DEFAULT 0,
			total NUMERIC(10, 2) NOT NULL DEFAULT 0,
			status VARCHAR(50) NOT NULL DEFAULT 'open',
			invoice_id INTEGER,
			issued_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS loyalty_programs (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			tiers JSONB NOT NULL DEFAULT '[]',
			tier_basis VARCHAR(20) NOT NULL DEFAULT 'lifetime'
		)`,
		`CREATE TABLE IF NOT EXISTS memberships (
			id VARCHAR(36) PRIMARY KEY,
			customer_id INTEGER REFERENCES customers(id),
			program_id INTEGER REFERENCES loyalty_programs(id),
			balance NUMERIC(10, 2) NOT NULL DEFAULT 0,
			lifetime_points NUMERIC(10, 2) NOT NULL DEFAULT 0,
			tier VARCHAR(100) NOT NULL DEFAULT 'Standard',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			history JSONB NOT NULL DEFAULT '[]',
			enrolled_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS timecards (
			id SERIAL PRIMARY KEY,
			staff_id INTEGER REFERENCES staff(id),
			date VARCHAR(10) NOT NULL,
			clock_in TIMESTAMP,
			clock_out TIMESTAMP,
			breaks JSONB NOT NULL DEFAULT '[]',
			hours_worked NUMERIC(10, 4) NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS reset_tokens (
			email VARCHAR(255) PRIMARY KEY,
			token VARCHAR(255) NOT NULL,
			expires_at TIMESTAMP NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// Staff repository methods
func (r *PostgresRepository) CreateStaff(ctx context.Context, login, email, passwordHash, role string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(
		ctx,
		"INSERT INTO staff (login, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id",
		login, email, passwordHash, role,
	).Scan(&id)

	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepository) GetStaffByLogin(ctx context.Context, login string) (*models.Staff, error) {
	return r.getStaff(ctx, "login = $1", login)
}

func (r *PostgresRepository) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return r.getStaff(ctx, "email = $1", email)
}

func (r *PostgresRepository) GetStaffByID(ctx context.Context, id int64) (*models.Staff, error) {
	return r.getStaff(ctx, "id = $1", id)
}

func (r *PostgresRepository) getStaff(ctx context.Context, where string, arg interface{}) (*models.Staff, error) {
	staff := &models.Staff{}
	err := r.db.QueryRowContext(
		ctx,
		"SELECT id, login, email, password_hash, role, failed_logins, created_at FROM staff WHERE "+where,
		arg,
	).Scan(&staff.ID, &staff.Login, &staff.Email, &staff.PasswordHash, &staff.Role, &staff.FailedLogins, &staff.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return staff, nil
}

func (r *PostgresRepository) UpdateStaffPassword(ctx context.Context, email, passwordHash string) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE staff SET password_hash = $1 WHERE email = $2",
		passwordHash, email,
	)
	return err
}

func (r *PostgresRepository) IncrementFailedLogins(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE staff SET failed_logins = failed_logins + 1 WHERE id = $1",
		id,
	)
	return err
}

func (r *PostgresRepository) ResetFailedLogins(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE staff SET failed_logins = 0 WHERE email = $1",
		email,
	)
	return err
}

// Reset token repository methods
func (r *PostgresRepository) SaveResetToken(ctx context.Context, token models.ResetToken) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO reset_tokens (email, token, expires_at) VALUES ($1, $2, $3)
         ON CONFLICT (email) DO UPDATE SET token = $2, expires_at = $3`,
		token.Email, token.Token, token.ExpiresAt,
	)
	return err
}

func (r *PostgresRepository) GetResetToken(ctx context.Context, email string) (*models.ResetToken, error) {
	token := &models.ResetToken{}
	err := r.db.QueryRowContext(
		ctx,
		"SELECT email, token, expires_at FROM reset_tokens WHERE email = $1",
		email,
	).Scan(&token.Email, &token.Token, &token.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return token, nil
}

func (r *PostgresRepository) DeleteResetToken(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(
		ctx,
		"DELETE FROM reset_tokens WHERE email = $1",
		email,
	)
	return err
}

func (r *PostgresRepository) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(
		ctx,
		"DELETE FROM reset_tokens WHERE expires_at <= $1",
		now,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Customer repository methods
func (r *PostgresRepository) CreateCustomer(ctx context.Context, c *models.Customer) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(
		ctx,
		"INSERT INTO customers (name, email, phone, address) VALUES ($1, $2, $3, $4) RETURNING id",
		c.Name, c.Email, c.Phone, c.Address,
	).Scan(&id)

	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepository) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	return r.getCustomer(ctx, "id = $1", id)
}

func (r *PostgresRepository) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.getCustomer(ctx, "email = $1", email)
}

func (r *PostgresRepository) getCustomer(ctx context.Context, where string, arg interface{}) (*models.Customer, error) {
	c := &models.Customer{}
	err := r.db.QueryRowContext(
		ctx,
		"SELECT id, name, email, phone, address, total_spent, last_visit, created_at FROM customers WHERE "+where,
		arg,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.TotalSpent, &c.LastVisit, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return c, nil
}
