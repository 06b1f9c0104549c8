package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Centralizes cache keys and TTL values for the seat reservation subsystem.
// Pattern: seatforge:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_MEDIUM = 12 * time.Hour   // venue layouts, section pricing
	TTL_SEMI_STATIC   = 1 * time.Hour    // event detail
	TTL_DYNAMIC_QUICK = 2 * time.Minute  // aliased as TTL_HOLD_MIRROR
	TTL_REALTIME      = 30 * time.Second // live seat availability
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "seatforge"
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
)

const (
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC
)

// ================== VENUES MODULE ==================

const (
	CACHE_KEY_VENUE_LAYOUT = CACHE_PREFIX + ":venues:layout:event:" // + event-id
)

const (
	TTL_VENUE_LAYOUT = TTL_STATIC_MEDIUM
)

// ================== SEATS MODULE ==================

const (
	CACHE_KEY_SEAT_AVAILABILITY = CACHE_PREFIX + ":seats:availability:event:" // + event-id
)

const (
	TTL_SEATS_AVAILABLE = TTL_REALTIME
)

// ================== HOLDS MODULE ==================

const (
	CACHE_KEY_HOLD_DETAIL  = CACHE_PREFIX + ":holds:detail:uuid:"  // + hold-id (side-channel mirror, §4.5)
	CACHE_KEY_SESSION_RATE = CACHE_PREFIX + ":holds:rate:session:" // + session-id
)

const (
	TTL_HOLD_MIRROR = TTL_DYNAMIC_QUICK
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_SEATS_EVENT = CACHE_PREFIX + ":seats:availability:event:" // + event-id + "*"
	PATTERN_INVALIDATE_HOLDS_ALL   = CACHE_PREFIX + ":holds:detail:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildVenueLayoutKey(eventID string) string {
	return CACHE_KEY_VENUE_LAYOUT + eventID
}

func BuildSeatAvailabilityKey(eventID string) string {
	return CACHE_KEY_SEAT_AVAILABILITY + eventID
}

func BuildHoldDetailKey(holdID string) string {
	return CACHE_KEY_HOLD_DETAIL + holdID
}

func BuildSessionRateKey(sessionID string) string {
	return CACHE_KEY_SESSION_RATE + sessionID
}

func BuildSeatsEventInvalidationPattern(eventID string) string {
	return fmt.Sprintf("%s%s*", PATTERN_INVALIDATE_SEATS_EVENT, eventID)
}
