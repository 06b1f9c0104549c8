package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the indexes and constraints the Seat
// Reservation Subsystem's concurrency control depends on: the seat
// inventory's CAS operations and the hold/order lookups that sit in the
// hot path of every hold and checkout request.
func MigrateConstraints(db *gorm.DB) error {
	// One inventory row per physical seat per event - the row every
	// TryHold/TrySell/ReleaseByHoldRef CAS statement targets.
	if err := db.Exec(`
		ALTER TABLE event_seat_states
		ADD CONSTRAINT IF NOT EXISTS unique_seat_per_event
		UNIQUE (event_id, seat_code);
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_seat_states_hold_ref
		ON event_seat_states (hold_ref) WHERE hold_ref IS NOT NULL;
	`).Error; err != nil {
		return err
	}

	// Hold lookups by session+event (extend-by-resubmission) and the
	// Expiration Worker's sweep over active holds past expiry.
	if err := db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_seat_holds_session_event
		ON seat_holds (session_id, event_id, status);
	`).Error; err != nil {
		return err
	}
	if err := db.Exec(`
		CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_seat_holds_expiry_sweep
		ON seat_holds (status, expires_at) WHERE status = 'ACTIVE';
	`).Error; err != nil {
		return err
	}
	// orders.payment_ref already carries a plain index via its gorm tag,
	// covering the webhook's lookup-by-reference path.

	return nil
}
