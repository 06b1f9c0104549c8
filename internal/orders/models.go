// Package orders implements the Checkout Coordinator (§4.2): turns a
// validated hold into a PENDING order, drives payment to a terminal
// state, and finalizes SOLD seats plus tickets — renamed and rebuilt
// from the teacher's internal/bookings (an immediate, unheld booking
// model) into a held-seat checkout flow.
package orders

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusRefunded  = "REFUNDED"
)

// CustomerInfo captures the checkout contact details (§6 customerInfo).
type CustomerInfo struct {
	Name  string `json:"name" gorm:"column:customer_name"`
	Email string `json:"email" gorm:"column:customer_email"`
	Phone string `json:"phone" gorm:"column:customer_phone"`
}

// SeatCodes mirrors internal/holds.SeatCodes — kept as its own type here
// (rather than imported) so orders has no compile dependency on holds'
// internal representation, only on the narrow HoldValidator it defines.
type SeatCodes []string

// Order is the durable checkout record (§3 Order, §4.2).
type Order struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_orders_event" json:"eventId"`
	HoldID        uuid.UUID  `gorm:"type:uuid;not null" json:"holdId"`
	SessionID     string     `gorm:"not null" json:"sessionId"`
	UserID        *uuid.UUID `gorm:"type:uuid" json:"userId,omitempty"`
	SeatCodes     SeatCodes  `gorm:"type:jsonb;serializer:json" json:"seatCodes"`
	CustomerInfo  CustomerInfo `gorm:"embedded" json:"customerInfo"`
	Subtotal      float64    `gorm:"not null" json:"subtotal"`
	Fee           float64    `gorm:"not null" json:"fee"`
	Tax           float64    `gorm:"not null" json:"tax"`
	Total         float64    `gorm:"not null" json:"total"`
	Currency      string     `gorm:"not null" json:"currency"`
	Status        string     `gorm:"not null;default:PENDING" json:"status"`
	PaymentRef    string     `gorm:"index" json:"paymentRef,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

func (o Order) IsTerminal() bool {
	return o.Status == StatusSucceeded || o.Status == StatusFailed || o.Status == StatusRefunded
}

// Ticket is issued per seat once an order succeeds.
type Ticket struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index:idx_tickets_order" json:"orderId"`
	EventID     uuid.UUID `gorm:"type:uuid;not null" json:"eventId"`
	SeatCode    string    `gorm:"not null" json:"seatCode"`
	SectionCode string    `gorm:"not null" json:"sectionCode"`
	IssuedAt    time.Time `json:"issuedAt"`
}

func (Ticket) TableName() string { return "order_tickets" }

// CheckoutIntentRequest is the input to CreateCheckoutIntent (§6 POST
// /orders/checkout-intent).
type CheckoutIntentRequest struct {
	EventID      string       `json:"eventId" binding:"required,uuid"`
	SeatIDs      []string     `json:"seatIds" binding:"required,min=1"`
	HoldID       string       `json:"holdId" binding:"required,uuid"`
	SessionID    string       `json:"sessionId" binding:"required"`
	UserID       string       `json:"userId"`
	CustomerInfo CustomerInfo `json:"customerInfo" binding:"required"`
}

// OrderWithTickets is the response shape for GET /orders/{id} (§6).
type OrderWithTickets struct {
	Order
	Tickets []Ticket `json:"tickets,omitempty"`
}
