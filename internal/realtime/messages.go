package realtime

import "time"

// Message types emitted into an event room (§4.4, §6 WebSocket surface).
const (
	TypeSeatAvailabilityUpdate = "seat_availability_update"
	TypeHoldExpired            = "hold_expired"
	TypeHoldExpiringSoon       = "hold_expiring_soon"
	TypeViewersUpdate          = "viewers_update"
	TypeJoinedEvent            = "joined_event"
)

// Message is the envelope broadcast to every client subscribed to an
// event room.
type Message struct {
	Type      string      `json:"type"`
	EventID   string      `json:"eventId"`
	Payload   interface{} `json:"payload,omitempty"`
	EmittedAt time.Time   `json:"emittedAt"`
}

// SeatAvailabilityPayload accompanies TypeSeatAvailabilityUpdate.
type SeatAvailabilityPayload struct {
	SeatCodes []string `json:"seatCodes"`
	Status    string   `json:"status"`
}

// HoldLifecyclePayload accompanies TypeHoldExpired / TypeHoldExpiringSoon.
type HoldLifecyclePayload struct {
	HoldID    string   `json:"holdId"`
	SeatCodes []string `json:"seatCodes"`
}

// ViewersPayload accompanies TypeJoinedEvent; nothing in this package
// sends TypeViewersUpdate.
type ViewersPayload struct {
	Count int `json:"count"`
}
