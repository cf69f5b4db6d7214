package models

import (
	"time"
)

// Staff represents a back-office staff account
type Staff struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	FailedLogins int       `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Customer represents a storefront customer
type Customer struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Address    string     `json:"address"`
	TotalSpent float64    `json:"total_spent"`
	LastVisit  *time.Time `json:"last_visit,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// OrderItem represents a single line of an order
type OrderItem struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	MRP       float64 `json:"mrp"`
	Quantity  int     `json:"quantity"`
}

// Order represents a storefront order
type Order struct {
	ID              int64       `json:"id"`
	Number          string      `json:"number"`
	CustomerID      int64       `json:"customer_id"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	Discount        float64     `json:"discount"`
	DeliveryFee     float64     `json:"delivery_fee"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	CreatedAt       time.Time   `json:"created_at"`
	StatusChangedAt time.Time   `json:"status_changed_at"`
}

// InvoiceItem represents a single line of an invoice or estimate
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// Payment represents a recorded payment against an invoice
type Payment struct {
	Reference  string    `json:"reference"`
	Amount     float64   `json:"amount"`
	Method     string    `json:"method"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Invoice represents a customer invoice
type Invoice struct {
	ID         int64         `json:"id"`
	Number     string        `json:"number"`
	CustomerID int64         `json:"customer_id"`
	Items      []InvoiceItem `json:"items"`
	Subtotal   float64       `json:"subtotal"`
	Tax        float64       `json:"tax"`
	Discount   float64       `json:"discount"`
	Total      float64       `json:"total"`
	AmountPaid float64       `json:"amount_paid"`
	Balance    float64       `json:"balance"`
	Status     string        `json:"status"`
	Payments   []Payment     `json:"payments"`
	IssuedAt   time.Time     `json:"issued_at"`
	DueAt      time.Time     `json:"due_at"`
}

// Estimate represents a quote that can be converted into an invoice
type Estimate struct {
	ID         int64         `json:"id"`
	Number     string        `json:"number"`
	CustomerID int64         `json:"customer_id"`
	Items      []InvoiceItem `json:"items"`
	Subtotal   float64       `json:"subtotal"`
	Tax        float64       `json:"tax"`
	Discount   float64       `json:"discount"`
	Total      float64       `json:"total"`
	Status     string        `json:"status"`
	InvoiceID  int64         `json:"invoice_id,omitempty"`
	IssuedAt   time.Time     `json:"issued_at"`
}

// Tier represents a loyalty tier threshold
type Tier struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
}

// LoyaltyProgram represents a loyalty program configuration
type LoyaltyProgram struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Tiers     []Tier `json:"tiers"`
	TierBasis string `json:"tier_basis"`
}

// LoyaltyEvent represents one append-only history row on a membership
type LoyaltyEvent struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Delta       float64   `json:"delta"`
	Balance     float64   `json:"balance"`
	Description string    `json:"description,omitempty"`
	Reference   string    `json:"reference,omitempty"`
}

// Membership represents a customer's enrollment in a loyalty program
type Membership struct {
	ID             string         `json:"id"`
	CustomerID     int64          `json:"customer_id"`
	ProgramID      int64          `json:"program_id"`
	Balance        float64        `json:"balance"`
	LifetimePoints float64        `json:"lifetime_points"`
	Tier           string         `json:"tier"`
	Active         bool           `json:"active"`
	History        []LoyaltyEvent `json:"history"`
	EnrolledAt     time.Time      `json:"enrolled_at"`
}

// Break represents a break interval on a timecard
type Break struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Paid  bool      `json:"paid"`
}

// Timecard represents one staff member's shift for a date
type Timecard struct {
	ID          int64      `json:"id"`
	StaffID     int64      `json:"staff_id"`
	Date        string     `json:"date"`
	ClockIn     *time.Time `json:"clock_in,omitempty"`
	ClockOut    *time.Time `json:"clock_out,omitempty"`
	Breaks      []Break    `json:"breaks"`
	HoursWorked float64    `json:"hours_worked"`
}

// ResetToken represents a pending password-reset token for an email
type ResetToken struct {
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TierBasis values for LoyaltyProgram
const (
	TierBasisBalance  = "balance"
	TierBasisLifetime = "lifetime"
)

// Order statuses
const (
	OrderStatusProcessing = "Processing"
	OrderStatusConfirmed  = "Confirmed"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
	OrderStatusReturned   = "Returned"
)

// Invoice statuses
const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusSent          = "sent"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusOverdue       = "overdue"
)

// Estimate statuses
const (
	EstimateStatusOpen      = "open"
	EstimateStatusConverted = "converted"
)

// Loyalty event types
const (
	EventEarn   = "earn"
	EventRedeem = "redeem"
	EventExpire = "expire"
	EventAdjust = "adjust"
)

// Staff roles
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)
