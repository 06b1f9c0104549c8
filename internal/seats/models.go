package seats

import (
	"time"

	"github.com/google/uuid"
)

// Seat statuses. Unlike the teacher's AVAILABLE/BLOCKED-only column with
// booking state derived from a seat_bookings join, this is the direct,
// CAS-able status column the Hold Arbiter and Checkout Coordinator
// transition atomically.
const (
	StatusAvailable = "AVAILABLE"
	StatusHeld      = "HELD"
	StatusSold      = "SOLD"
)

// SeatState is the durable, per-(event,seat) inventory row. It is the
// single source of truth the Hold Arbiter and Checkout Coordinator perform
// conditional updates against; invariants I1-I4 hold on this row.
type SeatState struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_seatstate_event" json:"eventId"`
	SeatCode    string     `gorm:"not null;index:idx_seatstate_event" json:"seatCode"`
	SectionCode string     `gorm:"not null" json:"sectionCode"`
	Status      string     `gorm:"not null;default:AVAILABLE" json:"status"`
	HoldRef     *uuid.UUID `gorm:"type:uuid" json:"holdRef,omitempty"`
	OrderRef    *uuid.UUID `gorm:"type:uuid" json:"orderRef,omitempty"`
	Version     int64      `gorm:"not null;default:0" json:"version"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (SeatState) TableName() string { return "event_seat_states" }

// IsAvailable reports whether the row is currently grantable.
func (s SeatState) IsAvailable() bool { return s.Status == StatusAvailable }

// SeatAvailabilityInfo is the read-model returned by GetAvailability.
type SeatAvailabilityInfo struct {
	SeatCode    string `json:"seatCode"`
	SectionCode string `json:"sectionCode"`
	Status      string `json:"status"`
}

// SeatSeed is the input to BulkCreateForEvent — one row per physical seat
// in the venue, supplied by the Event collaborator when an event publishes.
type SeatSeed struct {
	SeatCode    string
	SectionCode string
}
