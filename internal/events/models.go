package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the bookable show the Seat Reservation Subsystem holds and
// sells seats against. VenueTemplateID ties it to the fixed section
// layout (internal/venues) its seat inventory is generated from.
type Event struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string      `json:"name" gorm:"not null"`
	Description     string      `json:"description"`
	Venue           string      `json:"venue" gorm:"not null"`
	VenueTemplateID uuid.UUID   `json:"venue_template_id" gorm:"type:uuid;not null;index"`
	DateTime        time.Time   `json:"date_time" gorm:"not null"`
	BasePrice       float64     `json:"base_price" gorm:"not null"`
	ImageURL        string      `json:"image_url"`
	Status          EventStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedBy       uuid.UUID   `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Event) TableName() string { return "events" }

// ToResponse projects the storage row into the public API shape.
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:              e.ID.String(),
		Name:            e.Name,
		Description:     e.Description,
		Venue:           e.Venue,
		VenueTemplateID: e.VenueTemplateID.String(),
		DateTime:        e.DateTime,
		BasePrice:       e.BasePrice,
		ImageURL:        e.ImageURL,
		Status:          e.Status,
		CreatedBy:       e.CreatedBy.String(),
		CreatedAt:       e.CreatedAt,
	}
}

// EventResponse is the public projection of an Event.
type EventResponse struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Venue           string      `json:"venue"`
	VenueTemplateID string      `json:"venue_template_id"`
	DateTime        time.Time   `json:"date_time"`
	BasePrice       float64     `json:"base_price"`
	ImageURL        string      `json:"image_url"`
	Status          EventStatus `json:"status"`
	CreatedBy       string      `json:"created_by"`
	CreatedAt       time.Time   `json:"created_at"`
}

// CreateEventRequest is the admin-only event creation payload. An event
// is always created in draft status; PublishEvent is the only path that
// seeds seat inventory and makes it bookable.
type CreateEventRequest struct {
	Name            string    `json:"name" binding:"required,min=3,max=255"`
	Description     string    `json:"description" binding:"max=2000"`
	Venue           string    `json:"venue" binding:"required,min=1,max=255"`
	VenueTemplateID string    `json:"venue_template_id" binding:"required,uuid"`
	DateTime        time.Time `json:"date_time" binding:"required"`
	BasePrice       float64   `json:"base_price" binding:"required,min=0"`
	ImageURL        string    `json:"image_url" binding:"omitempty,url"`
}

// UpdateEventRequest supports partial updates via pointer fields.
type UpdateEventRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=3,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Venue       *string    `json:"venue" binding:"omitempty,min=1,max=255"`
	DateTime    *time.Time `json:"date_time"`
	BasePrice   *float64   `json:"base_price" binding:"omitempty,min=0"`
	ImageURL    *string    `json:"image_url" binding:"omitempty,url"`
}

// EventListQuery filters and paginates GetAllEvents.
type EventListQuery struct {
	Search   string `form:"search"`
	Venue    string `form:"venue"`
	Status   string `form:"status"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// PaginatedEvents is the GetAllEvents response envelope.
type PaginatedEvents struct {
	Events []EventResponse `json:"events"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}
