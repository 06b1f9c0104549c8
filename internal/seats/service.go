package seats

import (
	"context"

	"seatforge/internal/pricing"
	"seatforge/internal/shared/apperr"
	"seatforge/internal/shared/constants"
	"seatforge/pkg/cache"
	"seatforge/pkg/logger"

	"github.com/google/uuid"
)

// VenueLayout is the narrow slice of the Venue collaborator this service
// needs to compose getSeatPlan — kept as an interface here (rather than
// importing internal/venues directly) per the teacher's adapter-injection
// idiom in api/routes/router.go, avoiding a seats<->venues import cycle.
type VenueLayout interface {
	SectionsForEvent(ctx context.Context, eventID uuid.UUID) ([]pricing.Zone, error)
}

type Service interface {
	// getAvailability (§4.1): live per-seat status for an event.
	GetAvailability(ctx context.Context, eventID string) (*AvailabilityResponse, error)

	// getSeatPlan (§4.1): venue layout combined with live seat status.
	GetSeatPlan(ctx context.Context, eventID string) (*SeatPlanResponse, error)

	// BulkCreateForEvent seeds one SeatState row per physical seat when an
	// event publishes — the Event collaborator's trigger into this store.
	BulkCreateForEvent(ctx context.Context, eventID uuid.UUID, seeds []SeatSeed) error

	// InvalidateAvailabilityCache drops the cached availability snapshot
	// for an event; called by internal/orders after finalize so readers
	// never see stale AVAILABLE seats. internal/holds and the expiration
	// worker drop the same key through a cache pattern delete instead.
	InvalidateAvailabilityCache(ctx context.Context, eventID string)
}

type service struct {
	repo   Repository
	venues VenueLayout
	cache  cache.Service
	log    *logger.Logger
}

func NewService(repo Repository, venues VenueLayout, cacheService cache.Service) Service {
	return &service{repo: repo, venues: venues, cache: cacheService, log: logger.GetDefault()}
}

func (s *service) GetAvailability(ctx context.Context, eventIDStr string) (*AvailabilityResponse, error) {
	eventID, err := uuid.Parse(eventIDStr)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, "invalid event id", err)
	}

	cacheKey := constants.BuildSeatAvailabilityKey(eventIDStr)
	if s.cache != nil {
		var cached AvailabilityResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	rows, err := s.repo.GetAvailability(ctx, eventID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load seat availability", err)
	}

	resp := &AvailabilityResponse{EventID: eventIDStr}
	for _, row := range rows {
		resp.Seats = append(resp.Seats, SeatAvailabilityInfo{
			SeatCode:    row.SeatCode,
			SectionCode: row.SectionCode,
			Status:      row.Status,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, constants.TTL_SEATS_AVAILABLE); err != nil {
			s.log.Debug("seat availability cache set failed", "event_id", eventIDStr, "error", err)
		}
	}

	return resp, nil
}

func (s *service) GetSeatPlan(ctx context.Context, eventIDStr string) (*SeatPlanResponse, error) {
	eventID, err := uuid.Parse(eventIDStr)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, "invalid event id", err)
	}

	rows, err := s.repo.GetAvailability(ctx, eventID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load seat plan", err)
	}

	zones, err := s.venues.SectionsForEvent(ctx, eventID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ExternalUnavailable, "venue layout unavailable", err)
	}
	zoneByCode := make(map[string]pricing.Zone, len(zones))
	for _, z := range zones {
		zoneByCode[z.SectionCode] = z
	}

	sectionOrder := make([]string, 0, len(zones))
	sections := make(map[string]*SeatPlanSection, len(zones))
	for _, row := range rows {
		sec, ok := sections[row.SectionCode]
		if !ok {
			zone := zoneByCode[row.SectionCode]
			sec = &SeatPlanSection{
				SectionCode: row.SectionCode,
				Name:        zone.Name,
				Price:       zone.Price,
				Currency:    zone.Currency,
			}
			sections[row.SectionCode] = sec
			sectionOrder = append(sectionOrder, row.SectionCode)
		}
		sec.Seats = append(sec.Seats, SeatAvailabilityInfo{
			SeatCode:    row.SeatCode,
			SectionCode: row.SectionCode,
			Status:      row.Status,
		})
	}

	resp := &SeatPlanResponse{EventID: eventIDStr}
	for _, code := range sectionOrder {
		resp.Sections = append(resp.Sections, *sections[code])
	}
	return resp, nil
}

func (s *service) BulkCreateForEvent(ctx context.Context, eventID uuid.UUID, seeds []SeatSeed) error {
	if err := s.repo.BulkCreateForEvent(ctx, eventID, seeds); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to seed seat inventory", err)
	}
	return nil
}

func (s *service) InvalidateAvailabilityCache(ctx context.Context, eventIDStr string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, constants.BuildSeatAvailabilityKey(eventIDStr)); err != nil {
		s.log.Debug("seat availability cache invalidate failed", "event_id", eventIDStr, "error", err)
	}
}
