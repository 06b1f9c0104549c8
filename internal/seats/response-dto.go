package seats

// AvailabilityResponse is the payload for getAvailability (§4.1).
type AvailabilityResponse struct {
	EventID string                 `json:"eventId"`
	Seats   []SeatAvailabilityInfo `json:"seats"`
}

// SeatPlanSection is one section of the venue layout combined with live status.
type SeatPlanSection struct {
	SectionCode string                 `json:"sectionCode"`
	Name        string                 `json:"name"`
	Price       float64                `json:"price"`
	Currency    string                 `json:"currency"`
	Seats       []SeatAvailabilityInfo `json:"seats"`
}

// SeatPlanResponse is the payload for getSeatPlan (§4.1), combining the
// Venue collaborator's layout with this store's live seat status — the
// response contract mirrors the teacher's VenueLayoutResponse shape.
type SeatPlanResponse struct {
	EventID  string            `json:"eventId"`
	Sections []SeatPlanSection `json:"sections"`
}
