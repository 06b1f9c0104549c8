// Package holds implements the Hold Arbiter (§4.1): grants, extends, and
// releases seat holds against the Seat State Store, backed by a durable
// Hold record and mirrored (non-authoritatively) into the side-channel
// cache.
package holds

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "ACTIVE"
	StatusReleased = "RELEASED"
	StatusExpired  = "EXPIRED"
	StatusConsumed = "CONSUMED" // converted into an order by the Checkout Coordinator
)

// SeatCodes is a JSON-encoded string slice column — the teacher's models
// don't need this (seat_bookings is a join table there), so this follows
// the common gorm driver.Valuer/sql.Scanner idiom used across the Go
// ecosystem for storing a small ordered set inline on the owning row.
type SeatCodes []string

func (s SeatCodes) Value() (driver.Value, error) {
	return json.Marshal([]string(s))
}

func (s *SeatCodes) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("holds: SeatCodes.Scan: unsupported type")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, s)
}

// Hold is the durable reservation record (§3 Hold invariants I5-I7).
type Hold struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_holds_event" json:"eventId"`
	SessionID string     `gorm:"not null;index:idx_holds_session" json:"sessionId"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"userId,omitempty"`
	SeatCodes SeatCodes  `gorm:"type:jsonb" json:"seatCodes"`
	Status    string     `gorm:"not null;default:ACTIVE" json:"status"`
	ExpiresAt time.Time  `gorm:"not null;index:idx_holds_expires" json:"expiresAt"`
	OrderID   *uuid.UUID `gorm:"type:uuid" json:"orderId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (Hold) TableName() string { return "seat_holds" }

func (h Hold) IsExpired(now time.Time) bool { return now.After(h.ExpiresAt) }

func (h Hold) IsActive(now time.Time) bool {
	return h.Status == StatusActive && !h.IsExpired(now)
}

// HoldRequest is the input to HoldSeats (§6 POST /seats/hold).
type HoldRequest struct {
	EventID   string   `json:"eventId" binding:"required,uuid"`
	SeatIDs   []string `json:"seatIds" binding:"required,min=1"`
	SessionID string   `json:"sessionId"`
	UserID    string   `json:"userId"`
}

// ReleaseRequest is the input to ReleaseHold (§6 DELETE /seats/release).
type ReleaseRequest struct {
	HoldID    string `json:"holdId" binding:"required,uuid"`
	SessionID string `json:"sessionId" binding:"required"`
}
