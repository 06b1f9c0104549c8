package events

import (
	"context"

	"seatforge/internal/seats"
	"seatforge/internal/shared/apperr"
	"seatforge/pkg/logger"

	"github.com/google/uuid"
)

// SeatSeeder is the narrow seats collaborator an event publish triggers:
// one SeatState row per physical seat, generated from the venue layout.
type SeatSeeder interface {
	BulkCreateForEvent(ctx context.Context, eventID uuid.UUID, seeds []seats.SeatSeed) error
}

// VenueLayoutSource resolves the physical seat layout a venue template
// describes, so publishing an event can seed its seat inventory.
type VenueLayoutSource interface {
	GenerateSeatSeedsForEvent(ctx context.Context, eventID string) ([]seats.SeatSeed, error)
}

type Service interface {
	CreateEvent(adminID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(id uuid.UUID) (*EventResponse, error)
	UpdateEvent(id uuid.UUID, adminID uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(id uuid.UUID, adminID uuid.UUID) error
	GetAllEvents(query EventListQuery) (*PaginatedEvents, error)
	GetUpcomingEvents(limit int) ([]EventResponse, error)

	// PublishEvent transitions a draft event to published, seeding its
	// seat inventory exactly once (§2 precondition: holds and checkout
	// only operate against published events with seeded seats).
	PublishEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error)

	// IsPublished implements internal/holds.EventGate.
	IsPublished(ctx context.Context, eventID uuid.UUID) (bool, error)
}

type service struct {
	repo   Repository
	venues VenueLayoutSource
	seats  SeatSeeder
	log    *logger.Logger
}

func NewService(repo Repository, venues VenueLayoutSource, seatSeeder SeatSeeder) Service {
	return &service{repo: repo, venues: venues, seats: seatSeeder, log: logger.GetDefault()}
}

func (s *service) CreateEvent(adminID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	venueTemplateID, err := uuid.Parse(req.VenueTemplateID)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid venue template id")
	}

	event := &Event{
		ID:              uuid.New(),
		Name:            req.Name,
		Description:     req.Description,
		Venue:           req.Venue,
		VenueTemplateID: venueTemplateID,
		DateTime:        req.DateTime,
		BasePrice:       req.BasePrice,
		ImageURL:        req.ImageURL,
		Status:          EventStatusDraft,
		CreatedBy:       adminID,
	}
	if err := s.repo.Create(event); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "creating event", err)
	}
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEventByID(id uuid.UUID) (*EventResponse, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, "event not found", err)
	}
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) UpdateEvent(id uuid.UUID, adminID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, "event not found", err)
	}
	if !event.Status.CanBeUpdated() {
		return nil, apperr.New(apperr.InvalidState, "event in this status cannot be updated")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Venue != nil {
		updates["venue"] = *req.Venue
	}
	if req.DateTime != nil {
		updates["date_time"] = *req.DateTime
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "updating event", err)
	}
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) DeleteEvent(id uuid.UUID, adminID uuid.UUID) error {
	event, err := s.repo.GetByID(id)
	if err != nil {
		return apperr.Wrap(apperr.NotFound, "event not found", err)
	}
	if !event.Status.CanBeDeleted() {
		return apperr.New(apperr.InvalidState, "only draft events can be deleted")
	}
	if err := s.repo.Delete(id); err != nil {
		return apperr.Wrap(apperr.Internal, "deleting event", err)
	}
	return nil
}

func (s *service) GetAllEvents(query EventListQuery) (*PaginatedEvents, error) {
	events, total, err := s.repo.GetAll(query)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "listing events", err)
	}
	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = events[i].ToResponse()
	}
	page, limit := query.Page, query.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 10
	}
	return &PaginatedEvents{Events: responses, Total: total, Page: page, Limit: limit}, nil
}

func (s *service) GetUpcomingEvents(limit int) ([]EventResponse, error) {
	events, err := s.repo.GetUpcomingEvents(limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "listing upcoming events", err)
	}
	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = events[i].ToResponse()
	}
	return responses, nil
}

// PublishEvent implements the draft->published transition and its seat
// seeding trigger. Idempotent: publishing an already-published event is
// a no-op rather than re-seeding (seats would already carry live holds).
func (s *service) PublishEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, "event not found", err)
	}
	if event.Status == EventStatusPublished {
		resp := event.ToResponse()
		return &resp, nil
	}
	if event.Status != EventStatusDraft {
		return nil, apperr.New(apperr.InvalidState, "only draft events can be published")
	}

	seeds, err := s.venues.GenerateSeatSeedsForEvent(ctx, id.String())
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "generating seat inventory", err)
	}
	if len(seeds) == 0 {
		return nil, apperr.New(apperr.InvalidState, "venue template has no sections configured")
	}
	if err := s.seats.BulkCreateForEvent(ctx, id, seeds); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "seeding seat inventory", err)
	}

	updated, err := s.repo.Update(id, map[string]interface{}{"status": string(EventStatusPublished)})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "publishing event", err)
	}
	s.log.InfoWithContext(ctx, "event published", map[string]interface{}{"event_id": id.String(), "seats_seeded": len(seeds)})

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) IsPublished(ctx context.Context, eventID uuid.UUID) (bool, error) {
	event, err := s.repo.GetByID(eventID)
	if err != nil {
		return false, apperr.Wrap(apperr.NotFound, "event not found", err)
	}
	return event.Status == EventStatusPublished, nil
}
