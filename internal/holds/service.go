package holds

import (
	"context"
	"time"

	"seatforge/internal/realtime"
	"seatforge/internal/seats"
	"seatforge/internal/shared/apperr"
	"seatforge/internal/shared/constants"
	"seatforge/pkg/cache"
	"seatforge/pkg/logger"

	"github.com/google/uuid"
)

// EventGate is the narrow events collaborator the Hold Arbiter needs:
// only PUBLISHED events accept holds (§4.1 precondition).
type EventGate interface {
	IsPublished(ctx context.Context, eventID uuid.UUID) (bool, error)
}

// Service is the Hold Arbiter (§4.1): grants, extends, and releases
// holds, delegating the actual seat CAS to internal/seats.Repository and
// keeping the Hold system of record in sync.
type Service interface {
	HoldSeats(ctx context.Context, req HoldRequest) (*Hold, error)
	ReleaseHold(ctx context.Context, req ReleaseRequest) error
	ValidateHold(ctx context.Context, holdID string) (*Hold, error)

	// ConsumeHold marks a hold CONSUMED once the Checkout Coordinator has
	// sold its seats, so the Expiration Worker skips it even if its TTL
	// has lapsed by the time finalize runs.
	ConsumeHold(ctx context.Context, holdID string, orderID string) error
}

type service struct {
	repo       Repository
	seatRepo   seats.Repository
	events     EventGate
	cache      cache.Service
	broadcast  realtime.Sink
	log        *logger.Logger
	holdTTL    time.Duration
	maxPerHold int
}

func NewService(repo Repository, seatRepo seats.Repository, events EventGate, cacheSvc cache.Service, broadcast realtime.Sink, log *logger.Logger, holdTTL time.Duration, maxPerHold int) Service {
	return &service{
		repo:       repo,
		seatRepo:   seatRepo,
		events:     events,
		cache:      cacheSvc,
		broadcast:  broadcast,
		log:        log,
		holdTTL:    holdTTL,
		maxPerHold: maxPerHold,
	}
}

// HoldSeats implements POST /seats/hold (§6). A session already holding
// seats in this event gets its hold extended and unioned with the newly
// requested seats rather than receiving a second, independent hold —
// the extend-by-resubmission semantics §4.1 calls for.
func (s *service) HoldSeats(ctx context.Context, req HoldRequest) (*Hold, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid event id")
	}
	if len(req.SeatIDs) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "at least one seat id is required")
	}
	if len(req.SeatIDs) > s.maxPerHold {
		return nil, apperr.Newf(apperr.InvalidInput, "cannot hold more than %d seats per request", s.maxPerHold)
	}
	if req.SessionID == "" {
		return nil, apperr.New(apperr.InvalidInput, "session id is required")
	}

	published, err := s.events.IsPublished(ctx, eventID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "checking event status", err)
	}
	if !published {
		return nil, apperr.New(apperr.InvalidState, "event is not published")
	}

	existing, err := s.repo.FindActiveBySessionAndEvent(ctx, req.SessionID, eventID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "looking up existing hold", err)
	}

	requested := dedupe(req.SeatIDs)
	var holdRef uuid.UUID
	var merged []string
	var netNew []string
	if existing != nil {
		holdRef = existing.ID
		alreadyHeld := make(map[string]bool, len(existing.SeatCodes))
		for _, code := range existing.SeatCodes {
			alreadyHeld[code] = true
		}
		for _, code := range requested {
			if !alreadyHeld[code] {
				netNew = append(netNew, code)
			}
		}
		merged = dedupe(append(append([]string{}, existing.SeatCodes...), requested...))
		if len(merged) > s.maxPerHold {
			return nil, apperr.Newf(apperr.InvalidInput, "cannot hold more than %d seats per request", s.maxPerHold)
		}
	} else {
		holdRef = uuid.New()
		merged = requested
		netNew = requested
	}

	// Seats this session already holds are left in place idempotently
	// (§4.1); only the net-new seats go through the CAS so a re-submit
	// that repeats an already-held seat can't be rejected as conflicting
	// with itself.
	rejected, err := s.seatRepo.TryHold(ctx, eventID, netNew, holdRef)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "granting seat hold", err)
	}
	if len(rejected) > 0 {
		return nil, apperr.New(apperr.SeatConflict, "one or more seats are no longer available").
			WithDetails(map[string]interface{}{"rejectedSeatIds": rejected})
	}

	expiresAt := time.Now().Add(s.holdTTL)
	var hold *Hold
	if existing != nil {
		if err := s.repo.UpdateSeatsAndExpiry(ctx, existing.ID, merged, expiresAt); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "extending hold", err)
		}
		existing.SeatCodes = merged
		existing.ExpiresAt = expiresAt
		hold = existing
	} else {
		var userID *uuid.UUID
		if req.UserID != "" {
			if uid, err := uuid.Parse(req.UserID); err == nil {
				userID = &uid
			}
		}
		hold = &Hold{
			ID:        holdRef,
			EventID:   eventID,
			SessionID: req.SessionID,
			UserID:    userID,
			SeatCodes: merged,
			Status:    StatusActive,
			ExpiresAt: expiresAt,
		}
		if err := s.repo.Create(ctx, hold); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "persisting hold", err)
		}
	}

	s.log.LogSeatHeld(ctx, hold.ID.String(), req.EventID, req.SessionID, len(merged))
	s.mirrorHold(ctx, hold)
	if len(netNew) > 0 {
		s.invalidateAndBroadcast(ctx, req.EventID, netNew, seats.StatusHeld)
	}

	return hold, nil
}

// ReleaseHold implements DELETE /seats/release (§6).
func (s *service) ReleaseHold(ctx context.Context, req ReleaseRequest) error {
	holdID, err := uuid.Parse(req.HoldID)
	if err != nil {
		return apperr.New(apperr.InvalidInput, "invalid hold id")
	}

	hold, err := s.repo.GetByID(ctx, holdID)
	if err != nil {
		return apperr.Wrap(apperr.NotFound, "hold not found", err)
	}
	if hold.SessionID != req.SessionID {
		return apperr.New(apperr.Unauthorized, "hold does not belong to this session")
	}
	if hold.Status != StatusActive {
		return nil // already released/expired/consumed: release is idempotent
	}

	if _, err := s.seatRepo.ReleaseByHoldRef(ctx, holdID); err != nil {
		return apperr.Wrap(apperr.Internal, "releasing seats", err)
	}
	if err := s.repo.MarkReleased(ctx, holdID); err != nil {
		return apperr.Wrap(apperr.Internal, "marking hold released", err)
	}
	s.unmirrorHold(ctx, holdID)

	s.log.LogSeatReleased(ctx, hold.ID.String(), hold.EventID.String())
	s.invalidateAndBroadcast(ctx, hold.EventID.String(), hold.SeatCodes, seats.StatusAvailable)

	return nil
}

// ValidateHold implements the Checkout Coordinator's precondition check
// (§4.2): the hold must exist, be active, and not yet expired. Tries the
// side-channel mirror first (§4.5) before falling back to the database —
// the mirror is non-authoritative, so a miss or a stale hit both fall
// through to repo.GetByID rather than trusting the cache on its own.
func (s *service) ValidateHold(ctx context.Context, holdID string) (*Hold, error) {
	id, err := uuid.Parse(holdID)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid hold id")
	}

	var hold Hold
	if err := s.cache.Get(ctx, constants.BuildHoldDetailKey(holdID), &hold); err == nil && hold.IsActive(time.Now()) {
		return &hold, nil
	}

	dbHold, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, "hold not found", err)
	}
	if !dbHold.IsActive(time.Now()) {
		return nil, apperr.New(apperr.InvalidState, "hold is no longer active")
	}
	s.mirrorHold(ctx, dbHold)
	return dbHold, nil
}

// ConsumeHold implements Service.ConsumeHold.
func (s *service) ConsumeHold(ctx context.Context, holdID string, orderID string) error {
	hid, err := uuid.Parse(holdID)
	if err != nil {
		return apperr.New(apperr.InvalidInput, "invalid hold id")
	}
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return apperr.New(apperr.InvalidInput, "invalid order id")
	}
	if err := s.repo.MarkConsumed(ctx, hid, oid); err != nil {
		return apperr.Wrap(apperr.Internal, "marking hold consumed", err)
	}
	s.unmirrorHold(ctx, hid)
	return nil
}

// mirrorHold writes the non-authoritative Hold mirror (§4.5) keyed by
// holdId, TTL'd to match the hold's own expiry so the cache entry never
// outlives the record it mirrors. Best-effort: a cache write failure
// just means the next ValidateHold falls through to the database.
func (s *service) mirrorHold(ctx context.Context, hold *Hold) {
	ttl := time.Until(hold.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, constants.BuildHoldDetailKey(hold.ID.String()), hold, ttl); err != nil {
		s.log.ErrorWithContext(ctx, "failed to mirror hold", err, map[string]interface{}{"hold_id": hold.ID.String()})
	}
}

func (s *service) unmirrorHold(ctx context.Context, holdID uuid.UUID) {
	_ = s.cache.Delete(ctx, constants.BuildHoldDetailKey(holdID.String()))
}

func (s *service) invalidateAndBroadcast(ctx context.Context, eventID string, seatCodes []string, status string) {
	_ = s.cache.DeletePattern(ctx, constants.BuildSeatsEventInvalidationPattern(eventID))
	s.broadcast.Broadcast(ctx, eventID, realtime.Message{
		Type:    realtime.TypeSeatAvailabilityUpdate,
		EventID: eventID,
		Payload: realtime.SeatAvailabilityPayload{SeatCodes: seatCodes, Status: status},
	})
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
